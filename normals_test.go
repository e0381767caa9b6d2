package geosphere

import (
	"errors"
	"testing"
)

func TestCalculateNormalsSingleTriangle(t *testing.T) {
	vertices := []float32{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
	normals, err := CalculateNormals(vertices, []uint32{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}

	// All three corners share the centroid direction.
	want := Vec3{1, 1, 1}.Normalized()
	for i := 0; i < 3; i++ {
		if got := Vec3At(normals, i); !vecAlmostEqual(got, want) {
			t.Errorf("normal %d = %v, want %v", i, got, want)
		}
	}
}

func TestCalculateNormalsErrors(t *testing.T) {
	tri := []float32{1, 0, 0, 0, 1, 0, 0, 0, 1}

	testCases := []struct {
		name     string
		vertices []float32
		indices  []uint32
		expected error
	}{
		{"ragged vertices", []float32{1, 0}, nil, ErrInvalidMesh},
		{"ragged indices", tri, []uint32{0, 1}, ErrInvalidMesh},
		{"index out of range", tri, []uint32{0, 1, 3}, ErrIndexOutOfRange},
		{"unreferenced vertex", append(tri, 5, 5, 5), []uint32{0, 1, 2}, ErrIsolatedVertex},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := CalculateNormals(tc.vertices, tc.indices)
			if !errors.Is(err, tc.expected) {
				t.Errorf("error = %v, want %v", err, tc.expected)
			}
		})
	}
}

func TestCalculateNormalsEmpty(t *testing.T) {
	normals, err := CalculateNormals(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(normals) != 0 {
		t.Errorf("got %d normal floats for an empty mesh", len(normals))
	}
}

func TestCubeNormalsPointOutward(t *testing.T) {
	m := testCube(t)
	if err := m.Validate(); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < m.VertexCount(); i++ {
		if m.Normal(i).Dot(m.Vertex(i)) <= 0 {
			t.Errorf("cube normal %d = %v points inward", i, m.Normal(i))
		}
	}
}
