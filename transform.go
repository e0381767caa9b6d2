package geosphere

// Transformable is anything that owns a model matrix. The helpers below
// compose elementary transforms onto it in call order.
type Transformable interface {
	ModelMatrix() Mat4x4
	SetModelMatrix(m Mat4x4)
}

func Translate(t Transformable, v Vec3) {
	m := t.ModelMatrix()
	m.Translate(v)
	t.SetModelMatrix(m)
}

// Rotate turns t by degrees about axis, which must be unit length.
func Rotate(t Transformable, degrees float32, axis Vec3) {
	m := t.ModelMatrix()
	m.Rotate(degrees, axis)
	t.SetModelMatrix(m)
}

func Scale(t Transformable, v Vec3) {
	m := t.ModelMatrix()
	m.Scale(v)
	t.SetModelMatrix(m)
}

func ScaleUniform(t Transformable, f float32) {
	Scale(t, Vec3{f, f, f})
}

// Position is where t places its local origin in world space.
func Position(t Transformable) Vec3 {
	return t.ModelMatrix().Translation()
}
