package geosphere

import (
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"
)

// icosahedronFaces connects the 12 base vertices: 0 is the north pole,
// 1-5 the upper ring, 6-10 the lower ring and 11 the south pole. Every
// triangle is counter-clockwise seen from outside.
var icosahedronFaces = [60]uint32{
	0, 1, 2, 0, 2, 3, 0, 3, 4, 0, 4, 5, 0, 5, 1,
	1, 6, 2, 2, 7, 3, 3, 8, 4, 4, 9, 5, 5, 10, 1,
	2, 6, 7, 3, 7, 8, 4, 8, 9, 5, 9, 10, 1, 10, 6,
	11, 7, 6, 11, 8, 7, 11, 9, 8, 11, 10, 9, 11, 6, 10,
}

// icosahedronVertices places the poles on the Z axis and the two
// pentagonal rings at latitude ±atan(1/2). The lower ring is offset by half
// the 72° step from the upper one.
func icosahedronVertices() []float32 {
	const step = 72
	elevation := math32.Atan(0.5)
	z := math32.Sin(elevation)
	r := math32.Cos(elevation)

	vertices := make([]float32, 0, 12*3)
	vertices = append(vertices, 0, 0, 1)

	upper := float32(-90 - step/2.0)
	lower := float32(-90)
	ring := func(start, z float32) {
		for i := 0; i < 5; i++ {
			a := Radians(start + float32(i*step))
			vertices = append(vertices, r*math32.Cos(a), r*math32.Sin(a), z)
		}
	}
	ring(upper, z)
	ring(lower, -z)

	return append(vertices, 0, 0, -1)
}

// IcosahedronMesh returns the 12-vertex, 20-face base solid with normals.
func IcosahedronMesh() (*Mesh, error) {
	return Icosphere(0)
}

// MaxLevel is the deepest subdivision whose vertex count still fits a
// uint32 index.
const MaxLevel = 14

// IcosphereVertexCount and IcosphereTriangleCount are only meaningful for
// levels 0 through MaxLevel.
func IcosphereVertexCount(level int) int {
	return 10*pow4(level) + 2
}

func IcosphereTriangleCount(level int) int {
	return 20 * pow4(level)
}

func pow4(n int) int {
	return 1 << (2 * n)
}

// SphereGenerator builds unit icospheres. OnPass, if set, is called after
// each subdivision pass.
type SphereGenerator struct {
	OnPass func(pass, vertices, triangles int)
}

// Icosphere generates a unit icosphere subdivided level times.
func Icosphere(level int) (*Mesh, error) {
	return (&SphereGenerator{}).Generate(level)
}

func (g *SphereGenerator) Generate(level int) (*Mesh, error) {
	if level < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeLevel, level)
	}
	if level > MaxLevel {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrLevelTooHigh, level, MaxLevel)
	}

	m := &Mesh{
		Vertices: make([]float32, 0, IcosphereVertexCount(level)*3),
		Indices:  append(make([]uint32, 0, 60), icosahedronFaces[:]...),
	}
	m.Vertices = append(m.Vertices, icosahedronVertices()...)

	for pass := 1; pass <= level; pass++ {
		subdivide(m)
		if g.OnPass != nil {
			g.OnPass(pass, m.VertexCount(), m.TriangleCount())
		}
	}

	if err := m.CalculateNormals(); err != nil {
		return nil, fmt.Errorf("icosphere level %d: %w", level, err)
	}

	slog.Debug("icosphere generated", "level", level, "vertices", m.VertexCount(), "triangles", m.TriangleCount())
	return m, nil
}

// subdivide splits every triangle into four, projecting each new edge
// midpoint onto the unit sphere. Shared edges get exactly one midpoint.
func subdivide(m *Mesh) {
	cache := newMidpointCache(len(m.Indices) / 2)
	indices := make([]uint32, 0, len(m.Indices)*4)

	for i := 0; i < len(m.Indices); i += 3 {
		f, s, t := m.Indices[i], m.Indices[i+1], m.Indices[i+2]

		fs := cache.midpoint(m, f, s)
		st := cache.midpoint(m, s, t)
		ft := cache.midpoint(m, f, t)

		indices = append(indices,
			f, fs, ft,
			fs, s, st,
			ft, st, t,
			fs, st, ft,
		)
	}
	m.Indices = indices
}

type edgeKey struct {
	lo, hi uint32
}

func newEdgeKey(a, b uint32) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{lo: a, hi: b}
}

// midpointCache maps an unordered vertex pair to the vertex created at its
// midpoint. It lives for a single subdivision pass.
type midpointCache struct {
	points map[edgeKey]uint32
}

func newMidpointCache(edges int) *midpointCache {
	return &midpointCache{points: make(map[edgeKey]uint32, edges)}
}

func (c *midpointCache) lookup(a, b uint32) (uint32, bool) {
	idx, ok := c.points[newEdgeKey(a, b)]
	return idx, ok
}

func (c *midpointCache) midpoint(m *Mesh, a, b uint32) uint32 {
	if idx, ok := c.lookup(a, b); ok {
		return idx
	}

	mid := m.Vertex(int(a)).Add(m.Vertex(int(b))).Scale(0.5).Normalized()
	idx := m.AddVertex(mid)
	c.points[newEdgeKey(a, b)] = idx
	return idx
}
