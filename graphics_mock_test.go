package geosphere

import "errors"

// recordingContext is a GraphicsContext that remembers what it was asked
// to draw.
type recordingContext struct {
	compiled   []ShaderSource
	draws      []Uniforms
	meshes     []*Mesh
	compileErr error
	drawErr    error
}

type fakeProgram struct {
	src ShaderSource
}

func (c *recordingContext) CompileShader(src ShaderSource) (Program, error) {
	if c.compileErr != nil {
		return nil, c.compileErr
	}
	c.compiled = append(c.compiled, src)
	return &fakeProgram{src: src}, nil
}

func (c *recordingContext) DrawMesh(p Program, m *Mesh, u Uniforms) error {
	if _, ok := p.(*fakeProgram); !ok {
		return errors.New("foreign program")
	}
	if c.drawErr != nil {
		return c.drawErr
	}
	c.draws = append(c.draws, u)
	c.meshes = append(c.meshes, m)
	return nil
}
