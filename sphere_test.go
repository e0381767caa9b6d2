package geosphere

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestIcosphereCounts(t *testing.T) {
	testCases := []struct {
		level     int
		vertices  int
		triangles int
	}{
		{0, 12, 20},
		{1, 42, 80},
		{2, 162, 320},
		{3, 642, 1280},
		{4, 2562, 5120},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("level %d", tc.level), func(t *testing.T) {
			m, err := Icosphere(tc.level)
			if err != nil {
				t.Fatalf("Icosphere(%d) error: %v", tc.level, err)
			}
			if got := m.VertexCount(); got != tc.vertices {
				t.Errorf("level %d: %d vertices, want %d", tc.level, got, tc.vertices)
			}
			if got := m.TriangleCount(); got != tc.triangles {
				t.Errorf("level %d: %d triangles, want %d", tc.level, got, tc.triangles)
			}
			if got := IcosphereVertexCount(tc.level); got != tc.vertices {
				t.Errorf("IcosphereVertexCount(%d) = %d", tc.level, got)
			}
			if got := IcosphereTriangleCount(tc.level); got != tc.triangles {
				t.Errorf("IcosphereTriangleCount(%d) = %d", tc.level, got)
			}
			if len(m.Normals) != len(m.Vertices) {
				t.Errorf("%d normal floats for %d vertex floats", len(m.Normals), len(m.Vertices))
			}
		})
	}
}

func TestIcosahedronBase(t *testing.T) {
	m := testIcosahedron(t)
	if got := len(m.Vertices); got != 36 {
		t.Fatalf("len(Vertices) = %d, want 36", got)
	}
	if got := len(m.Indices); got != 60 {
		t.Fatalf("len(Indices) = %d, want 60", got)
	}
	if m.Vertex(0) != (Vec3{0, 0, 1}) {
		t.Errorf("vertex 0 = %v, want north pole", m.Vertex(0))
	}
	if m.Vertex(11) != (Vec3{0, 0, -1}) {
		t.Errorf("vertex 11 = %v, want south pole", m.Vertex(11))
	}

	// Every vertex of a regular icosahedron has five neighbours.
	degree := make([]int, m.VertexCount())
	for _, idx := range m.Indices {
		degree[idx]++
	}
	for i, d := range degree {
		if d != 5 {
			t.Errorf("vertex %d is used by %d triangles, want 5", i, d)
		}
	}
}

func TestIcosphereGeometry(t *testing.T) {
	for level := 0; level <= 3; level++ {
		m, err := Icosphere(level)
		if err != nil {
			t.Fatal(err)
		}

		for i := 0; i < m.VertexCount(); i++ {
			if l := m.Vertex(i).Length(); !almostEqual(l, 1) {
				t.Fatalf("level %d: vertex %d has length %g", level, i, l)
			}
			if l := m.Normal(i).Length(); !almostEqual(l, 1) {
				t.Fatalf("level %d: normal %d has length %g", level, i, l)
			}
			if d := m.Normal(i).Dot(m.Vertex(i)); d <= 0 {
				t.Fatalf("level %d: normal %d points inward", level, i)
			}
		}

		for i := 0; i < m.TriangleCount(); i++ {
			a, b, c := m.Triangle(i)
			va, vb, vc := m.Vertex(int(a)), m.Vertex(int(b)), m.Vertex(int(c))
			n := vb.Sub(va).Cross(vc.Sub(va))
			if n.Dot(Sum(va, vb, vc)) <= 0 {
				t.Fatalf("level %d: triangle %d (%d, %d, %d) is not counter-clockwise from outside", level, i, a, b, c)
			}
		}
	}
}

func TestIcosphereHasNoDuplicateVertices(t *testing.T) {
	m, err := Icosphere(3)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[Vec3]int, m.VertexCount())
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		if j, ok := seen[v]; ok {
			t.Fatalf("vertices %d and %d are both %v", j, i, v)
		}
		seen[v] = i
	}
}

func TestIcosphereLevelOutOfRange(t *testing.T) {
	testCases := []struct {
		level    int
		expected error
	}{
		{-1, ErrNegativeLevel},
		{MaxLevel + 1, ErrLevelTooHigh},
		{31, ErrLevelTooHigh},
		{32, ErrLevelTooHigh},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("level %d", tc.level), func(t *testing.T) {
			m, err := Icosphere(tc.level)
			if !errors.Is(err, tc.expected) {
				t.Errorf("error = %v, want %v", err, tc.expected)
			}
			if m != nil {
				t.Error("got a mesh for an invalid level")
			}
		})
	}
}

func TestMaxLevelFitsUint32Indices(t *testing.T) {
	if got := int64(IcosphereVertexCount(MaxLevel)); got > math.MaxUint32 {
		t.Errorf("level %d needs %d vertices, more than a uint32 index addresses", MaxLevel, got)
	}
	if got := int64(IcosphereVertexCount(MaxLevel + 1)); got <= math.MaxUint32 {
		t.Errorf("level %d needs only %d vertices; MaxLevel could be raised", MaxLevel+1, got)
	}
}

func TestSphereGeneratorOnPass(t *testing.T) {
	type pass struct{ n, vertices, triangles int }
	var passes []pass
	gen := &SphereGenerator{
		OnPass: func(n, vertices, triangles int) {
			passes = append(passes, pass{n, vertices, triangles})
		},
	}
	if _, err := gen.Generate(3); err != nil {
		t.Fatal(err)
	}

	want := []pass{{1, 42, 80}, {2, 162, 320}, {3, 642, 1280}}
	if len(passes) != len(want) {
		t.Fatalf("got %d passes, want %d", len(passes), len(want))
	}
	for i := range want {
		if passes[i] != want[i] {
			t.Errorf("pass %d = %+v, want %+v", i, passes[i], want[i])
		}
	}
}

func TestMidpointCacheIsSymmetric(t *testing.T) {
	m := testIcosahedron(t)
	before := m.VertexCount()
	cache := newMidpointCache(4)

	ab := cache.midpoint(m, 0, 1)
	ba := cache.midpoint(m, 1, 0)
	if ab != ba {
		t.Errorf("midpoint(0, 1) = %d but midpoint(1, 0) = %d", ab, ba)
	}
	if got := m.VertexCount(); got != before+1 {
		t.Errorf("%d vertices added, want 1", got-before)
	}
	if len(cache.points) != 1 {
		t.Errorf("cache holds %d edges, want 1", len(cache.points))
	}

	want := m.Vertex(0).Add(m.Vertex(1)).Normalized()
	if !vecAlmostEqual(m.Vertex(int(ab)), want) {
		t.Errorf("midpoint = %v, want %v", m.Vertex(int(ab)), want)
	}

	if _, ok := cache.lookup(1, 2); ok {
		t.Error("lookup found an edge that was never split")
	}
}

func TestEdgeKeyIsCanonical(t *testing.T) {
	if newEdgeKey(7, 3) != newEdgeKey(3, 7) {
		t.Error("edge keys differ by argument order")
	}
	if k := newEdgeKey(9, 2); k.lo != 2 || k.hi != 9 {
		t.Errorf("newEdgeKey(9, 2) = %+v", k)
	}
}
