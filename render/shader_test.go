package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/smasonuk/geosphere"
)

func TestShaderCache(t *testing.T) {
	var compiled []string
	cache := newShaderCache(func(src []byte) (*ebiten.Shader, error) {
		compiled = append(compiled, string(src))
		return nil, nil
	})

	p1, err := cache.get(geosphere.ShaderSource{})
	if err != nil {
		t.Fatal(err)
	}
	p2, err := cache.get(geosphere.ShaderSource{Fragment: defaultFragment})
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Error("default and explicit default fragment compiled separately")
	}
	if len(compiled) != 1 {
		t.Errorf("compiled %d times, want 1", len(compiled))
	}
	if !strings.Contains(compiled[0], "func Fragment") {
		t.Error("empty source did not select the default fragment")
	}

	if _, err := cache.get(geosphere.ShaderSource{Fragment: "package main"}); err != nil {
		t.Fatal(err)
	}
	if len(compiled) != 2 {
		t.Errorf("compiled %d times, want 2", len(compiled))
	}
}

func TestShaderCacheErrors(t *testing.T) {
	cache := newShaderCache(func(src []byte) (*ebiten.Shader, error) {
		return nil, errors.New("1:1: unexpected token")
	})

	_, err := cache.get(geosphere.ShaderSource{Fragment: "garbage"})
	if !errors.Is(err, geosphere.ErrShaderCompile) {
		t.Errorf("error = %v, want %v", err, geosphere.ErrShaderCompile)
	}
	if err != nil && !strings.Contains(err.Error(), "unexpected token") {
		t.Errorf("error %q lost the compiler message", err)
	}

	_, err = cache.get(geosphere.ShaderSource{Vertex: "void main() {}"})
	if !errors.Is(err, ErrUnsupportedStage) {
		t.Errorf("error = %v, want %v", err, ErrUnsupportedStage)
	}
}

func TestUniformMapIsColumnMajor(t *testing.T) {
	u := geosphere.Uniforms{
		Model:      geosphere.TranslationMatrix(geosphere.Vec3{X: 1, Y: 2, Z: 3}),
		View:       geosphere.Identity(),
		Projection: geosphere.Identity(),
		LightDir:   geosphere.Up,
	}
	m := uniformMap(u)

	model := m["Model"].([]float32)
	if model[12] != 1 || model[13] != 2 || model[14] != 3 {
		t.Errorf("translation not in the last column: %v", model)
	}
	light := m["LightDir"].([]float32)
	if light[1] != 1 {
		t.Errorf("light = %v", light)
	}
}
