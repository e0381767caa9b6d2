package geosphere

import "image/color"

// ShaderSource is a shader program description. Empty stages select the
// backend's defaults.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// Program is an opaque handle to a compiled shader, owned by the
// GraphicsContext that produced it.
type Program interface{}

// Uniforms are the per-draw values handed to the shader. Matrices are in
// this package's row-major layout.
type Uniforms struct {
	Model      Mat4x4
	View       Mat4x4
	Projection Mat4x4
	Color      color.RGBA
	LightDir   Vec3
}

// GraphicsContext is the rendering backend. Its lifecycle belongs to the
// window that created it.
type GraphicsContext interface {
	// CompileShader returns a linked program or an error describing why
	// compilation failed. Backends may cache by source.
	CompileShader(src ShaderSource) (Program, error)

	// DrawMesh uploads m and issues one indexed triangle draw.
	DrawMesh(p Program, m *Mesh, u Uniforms) error
}
