package geosphere

import (
	"fmt"
	"log/slog"
)

// Mesh is flat, GPU-ready geometry: three floats per vertex, three indices
// per triangle, and one normal per vertex parallel to Vertices.
type Mesh struct {
	Vertices []float32
	Indices  []uint32
	Normals  []float32
}

func NewMesh() *Mesh {
	return &Mesh{}
}

func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *Mesh) Vertex(i int) Vec3 {
	return Vec3At(m.Vertices, i)
}

func (m *Mesh) Normal(i int) Vec3 {
	return Vec3At(m.Normals, i)
}

func (m *Mesh) Triangle(i int) (uint32, uint32, uint32) {
	return m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v Vec3) uint32 {
	m.Vertices = append(m.Vertices, v.X, v.Y, v.Z)
	return uint32(m.VertexCount() - 1)
}

func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// CalculateNormals replaces Normals with the smoothed field derived from
// the current vertices and indices.
func (m *Mesh) CalculateNormals() error {
	normals, err := CalculateNormals(m.Vertices, m.Indices)
	if err != nil {
		return err
	}
	m.Normals = normals
	return nil
}

// Validate checks the structural invariants a rendering backend relies on.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d vertex floats is not a multiple of 3", ErrInvalidMesh, len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a multiple of 3", ErrInvalidMesh, len(m.Indices))
	}
	if len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("%w: %d normal floats for %d vertex floats", ErrInvalidMesh, len(m.Normals), len(m.Vertices))
	}
	for i := 0; i < m.VertexCount(); i++ {
		if m.Vertex(i).IsNaN() || m.Normal(i).IsNaN() {
			return fmt.Errorf("%w: vertex %d is not a number", ErrInvalidMesh, i)
		}
	}
	count := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= count {
			return fmt.Errorf("%w: index %d at position %d, mesh has %d vertices", ErrIndexOutOfRange, idx, i, count)
		}
	}
	return nil
}

// Extents returns the size of the axis-aligned bounding box.
func (m *Mesh) Extents() Vec3 {
	if m.VertexCount() == 0 {
		return Zero
	}

	lo, hi := m.Vertex(0), m.Vertex(0)
	for i := 1; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		lo = Vec3{min(lo.X, v.X), min(lo.Y, v.Y), min(lo.Z, v.Z)}
		hi = Vec3{max(hi.X, v.X), max(hi.Y, v.Y), max(hi.Z, v.Z)}
	}
	size := hi.Sub(lo)
	slog.Debug("mesh extents", "x", size.X, "y", size.Y, "z", size.Z)
	return size
}

func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]float32(nil), m.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
		Normals:  append([]float32(nil), m.Normals...),
	}
}
