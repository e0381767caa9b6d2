package geosphere

import "fmt"

var cubeVertices = []float32{
	-1, -1, -1,
	-1, -1, 1,
	-1, 1, -1,
	-1, 1, 1,
	1, -1, -1,
	1, -1, 1,
	1, 1, -1,
	1, 1, 1,
}

var cubeIndices = []uint32{
	0, 1, 2,
	3, 2, 1,
	1, 5, 3,
	7, 3, 5,
	5, 4, 7,
	6, 7, 4,
	4, 0, 6,
	2, 6, 0,
	4, 5, 0,
	1, 0, 5,
	2, 3, 6,
	7, 6, 3,
}

// CubeMesh returns a cube spanning -1..1 on every axis. Its normals point
// outward from each corner, close to the corner diagonal.
func CubeMesh() (*Mesh, error) {
	m := &Mesh{
		Vertices: append([]float32(nil), cubeVertices...),
		Indices:  append([]uint32(nil), cubeIndices...),
	}
	if err := m.CalculateNormals(); err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	return m, nil
}
