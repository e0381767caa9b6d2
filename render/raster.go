package render

import (
	"sort"

	"github.com/smasonuk/geosphere"
)

type screenVertex struct {
	x, y   float32
	normal geosphere.Vec3
}

type screenTriangle struct {
	v     [3]screenVertex
	depth float32
}

// projectMesh runs the vertex stage on the CPU: transform to clip space,
// clip against the near plane, divide by w, map to the viewport, drop
// back faces, and sort what is left farthest first.
func projectMesh(m *geosphere.Mesh, u geosphere.Uniforms, width, height float32) []screenTriangle {
	mvp := u.Projection.Mul(u.View).Mul(u.Model)

	clip := make([]clipVertex, m.VertexCount())
	for i := range clip {
		v := m.Vertex(i)
		clip[i] = clipVertex{
			pos:    mvp.MulVec4([4]float32{v.X, v.Y, v.Z, 1}),
			normal: m.Normal(i),
		}
	}

	tris := make([]screenTriangle, 0, m.TriangleCount())
	poly := make([]clipVertex, 0, 4)
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		in := [3]clipVertex{clip[a], clip[b], clip[c]}
		if beyondFar(in[:]) {
			continue
		}

		poly = clipPolygonAgainstNearPlane(poly[:0], in[:])
		if len(poly) < 3 {
			continue
		}

		first, firstZ := toScreen(poly[0], width, height)
		for j := 1; j < len(poly)-1; j++ {
			s1, z1 := toScreen(poly[j], width, height)
			s2, z2 := toScreen(poly[j+1], width, height)
			t := screenTriangle{
				v:     [3]screenVertex{first, s1, s2},
				depth: (firstZ + z1 + z2) / 3,
			}
			if !frontFacing(t) {
				continue
			}
			tris = append(tris, t)
		}
	}

	// NDC depth grows away from the camera.
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i].depth > tris[j].depth
	})
	return tris
}

func beyondFar(vs []clipVertex) bool {
	for _, v := range vs {
		if v.pos[2] <= v.pos[3] {
			return false
		}
	}
	return true
}

// toScreen maps a clip-space vertex to pixel coordinates with y down, and
// returns its NDC depth.
func toScreen(v clipVertex, width, height float32) (screenVertex, float32) {
	w := v.pos[3]
	ndcX, ndcY, ndcZ := v.pos[0]/w, v.pos[1]/w, v.pos[2]/w
	return screenVertex{
		x:      (ndcX + 1) * 0.5 * width,
		y:      (1 - ndcY) * 0.5 * height,
		normal: v.normal,
	}, ndcZ
}

// frontFacing reports whether the triangle is counter-clockwise in NDC.
// Screen y points down, which flips the sign of the area.
func frontFacing(t screenTriangle) bool {
	a, b, c := t.v[0], t.v[1], t.v[2]
	area := (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
	return area < 0
}
