package geosphere

import (
	"fmt"
	"image/color"
	"log/slog"
)

var defaultColor = color.RGBA{R: 200, G: 200, B: 200, A: 255}

// Object is a renderable mesh entity: a model matrix, a visibility flag,
// its own mesh, a colour and the shader it is drawn with. Each Object owns
// its buffers exclusively.
type Object struct {
	model   Mat4x4
	visible bool
	mesh    Mesh
	color   color.RGBA
	shader  ShaderSource
}

func NewObject() *Object {
	return &Object{
		model:   Identity(),
		visible: true,
		color:   defaultColor,
	}
}

// NewSphere returns an object holding a unit icosphere subdivided level
// times.
func NewSphere(level int) (*Object, error) {
	m, err := Icosphere(level)
	if err != nil {
		return nil, fmt.Errorf("new sphere: %w", err)
	}
	o := NewObject()
	o.mesh = *m
	return o, nil
}

func NewCube() (*Object, error) {
	m, err := CubeMesh()
	if err != nil {
		return nil, fmt.Errorf("new cube: %w", err)
	}
	o := NewObject()
	o.mesh = *m
	return o, nil
}

func (o *Object) ModelMatrix() Mat4x4 {
	return o.model
}

func (o *Object) SetModelMatrix(m Mat4x4) {
	o.model = m
}

func (o *Object) TranslateBy(v Vec3) {
	Translate(o, v)
}

func (o *Object) RotateAround(degrees float32, axis Vec3) {
	Rotate(o, degrees, axis)
}

func (o *Object) ScaleBy(v Vec3) {
	Scale(o, v)
}

func (o *Object) ScaledBy(f float32) {
	ScaleUniform(o, f)
}

func (o *Object) Position() Vec3 {
	return Position(o)
}

func (o *Object) Visible() bool {
	return o.visible
}

func (o *Object) SetVisible(v bool) {
	o.visible = v
}

// Mesh returns the object's own mesh. Callers may modify it in place.
func (o *Object) Mesh() *Mesh {
	return &o.mesh
}

// SetMesh copies m into the object.
func (o *Object) SetMesh(m *Mesh) {
	o.mesh = *m.Clone()
}

// SetVertices, SetIndices and SetNormals copy their input. Nothing is
// validated here; the backend rejects malformed meshes at draw time.
func (o *Object) SetVertices(v []float32) {
	o.mesh.Vertices = append([]float32(nil), v...)
}

func (o *Object) SetIndices(idx []uint32) {
	o.mesh.Indices = append([]uint32(nil), idx...)
}

func (o *Object) SetNormals(n []float32) {
	o.mesh.Normals = append([]float32(nil), n...)
}

func (o *Object) Recolor(r, g, b uint8) {
	o.color = color.RGBA{R: r, G: g, B: b, A: 255}
}

func (o *Object) Color() color.RGBA {
	return o.color
}

func (o *Object) Shader() ShaderSource {
	return o.shader
}

func (o *Object) SetShader(src ShaderSource) {
	o.shader = src
}

// Clone deep-copies the object, mesh included.
func (o *Object) Clone() *Object {
	c := *o
	c.mesh = *o.mesh.Clone()
	return &c
}

// Draw renders the object through ctx with the camera's matrices. Hidden
// objects issue no draw call.
func (o *Object) Draw(ctx GraphicsContext, cam *Camera, light Vec3) error {
	if !o.visible {
		return nil
	}

	prog, err := ctx.CompileShader(o.shader)
	if err != nil {
		return fmt.Errorf("draw object: %w", err)
	}

	u := Uniforms{
		Model:      o.model,
		View:       cam.View(),
		Projection: cam.Projection(),
		Color:      o.color,
		LightDir:   light,
	}
	if err := ctx.DrawMesh(prog, &o.mesh, u); err != nil {
		slog.Debug("draw failed", "vertices", o.mesh.VertexCount(), "error", err)
		return fmt.Errorf("draw object: %w", err)
	}
	return nil
}
