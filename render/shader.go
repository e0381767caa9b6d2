package render

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/geosphere"
)

// ErrUnsupportedStage is returned for shader stages ebiten cannot run.
// Vertex processing happens on the CPU, so only fragment programs are
// accepted.
var ErrUnsupportedStage = errors.New("unsupported shader stage")

// defaultFragment is a Kage program shading with a single directional
// light. The custom vertex attribute carries the object-space normal.
const defaultFragment = `//kage:unit pixels

package main

var Model mat4
var View mat4
var Projection mat4
var LightDir vec3
var Ambient float

func Fragment(dstPos vec4, srcPos vec2, color vec4, custom vec4) vec4 {
	n := normalize((View * Model * vec4(custom.xyz, 0)).xyz)
	l := normalize((View * vec4(LightDir, 0)).xyz)
	diffuse := max(dot(n, l), 0)
	return vec4(color.rgb*(Ambient+(1-Ambient)*diffuse), color.a)
}
`

const ambientLight = 0.25

type program struct {
	shader *ebiten.Shader
	source string
}

type compileFunc func(src []byte) (*ebiten.Shader, error)

type shaderCache struct {
	compile  compileFunc
	programs map[string]*program
}

func newShaderCache(compile compileFunc) *shaderCache {
	return &shaderCache{
		compile:  compile,
		programs: make(map[string]*program),
	}
}

func (c *shaderCache) get(src geosphere.ShaderSource) (*program, error) {
	if src.Vertex != "" {
		return nil, fmt.Errorf("%w: vertex shaders are not supported", ErrUnsupportedStage)
	}
	frag := src.Fragment
	if frag == "" {
		frag = defaultFragment
	}
	if p, ok := c.programs[frag]; ok {
		return p, nil
	}

	s, err := c.compile([]byte(frag))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", geosphere.ErrShaderCompile, err)
	}
	p := &program{shader: s, source: frag}
	c.programs[frag] = p
	return p, nil
}

// matrixUniform lays a row-major matrix out column-major, the order Kage
// reads mat4 uniforms in.
func matrixUniform(m geosphere.Mat4x4) []float32 {
	t := m.Transpose()
	return t[:]
}

func uniformMap(u geosphere.Uniforms) map[string]any {
	return map[string]any{
		"Model":      matrixUniform(u.Model),
		"View":       matrixUniform(u.View),
		"Projection": matrixUniform(u.Projection),
		"LightDir":   []float32{u.LightDir.X, u.LightDir.Y, u.LightDir.Z},
		"Ambient":    float32(ambientLight),
	}
}
