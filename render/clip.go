package render

import "github.com/smasonuk/geosphere"

// clipVertex is a vertex after the model-view-projection transform, still
// in homogeneous clip space.
type clipVertex struct {
	pos    [4]float32
	normal geosphere.Vec3
}

// nearDistance is the signed distance from the near plane, z = -w. It is
// non-negative for points in front of the plane.
func nearDistance(v clipVertex) float32 {
	return v.pos[2] + v.pos[3]
}

func lerpClip(a, b clipVertex, t float32) clipVertex {
	var out clipVertex
	for i := range out.pos {
		out.pos[i] = a.pos[i] + (b.pos[i]-a.pos[i])*t
	}
	out.normal = a.normal.Add(b.normal.Sub(a.normal).Scale(t))
	return out
}

// clipPolygonAgainstNearPlane keeps the part of the convex polygon in
// front of the near plane, inserting intersection points where edges cross
// it. Winding is preserved. The result is appended to dst.
func clipPolygonAgainstNearPlane(dst, polygon []clipVertex) []clipVertex {
	if len(polygon) == 0 {
		return dst
	}

	for i, cur := range polygon {
		next := polygon[(i+1)%len(polygon)]
		dc, dn := nearDistance(cur), nearDistance(next)

		if dc >= 0 {
			dst = append(dst, cur)
		}
		if (dc >= 0) != (dn >= 0) {
			dst = append(dst, lerpClip(cur, next, dc/(dc-dn)))
		}
	}
	return dst
}
