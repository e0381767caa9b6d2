package geosphere

import "fmt"

// CalculateNormals returns one unit normal per vertex, blended from every
// triangle the vertex belongs to.
//
// Each triangle contributes its centroid rather than its cross-product
// normal. That only tracks the outward direction when the vertices already
// lie near a unit sphere, as icosphere vertices do; arbitrary meshes need
// area- or angle-weighted face normals instead.
func CalculateNormals(vertices []float32, indices []uint32) ([]float32, error) {
	if len(vertices)%3 != 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d vertex floats, %d indices", ErrInvalidMesh, len(vertices), len(indices))
	}
	count := uint32(len(vertices) / 3)

	normals := make([]float32, len(vertices))
	for i := 0; i < len(indices); i += 3 {
		f, s, t := indices[i], indices[i+1], indices[i+2]
		if f >= count || s >= count || t >= count {
			return nil, fmt.Errorf("%w: triangle %d (%d, %d, %d) with %d vertices",
				ErrIndexOutOfRange, i/3, f, s, t, count)
		}

		centroid := Sum(
			Vec3At(vertices, int(f)),
			Vec3At(vertices, int(s)),
			Vec3At(vertices, int(t)),
		).DivScalar(3)

		for _, idx := range [3]uint32{f, s, t} {
			normals[idx*3] += centroid.X
			normals[idx*3+1] += centroid.Y
			normals[idx*3+2] += centroid.Z
		}
	}

	for i := 0; i < int(count); i++ {
		n, err := Vec3At(normals, i).Unit()
		if err != nil {
			return nil, fmt.Errorf("%w: vertex %d", ErrIsolatedVertex, i)
		}
		normals[i*3], normals[i*3+1], normals[i*3+2] = n.X, n.Y, n.Z
	}
	return normals, nil
}
