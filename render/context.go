package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/smasonuk/geosphere"
)

// ebiten indexes vertices with uint16, so triangles are submitted in
// batches.
const maxBatchTriangles = 4096

var outlineColor = color.RGBA{R: 100, G: 100, B: 100, A: 20}

// Context is a geosphere.GraphicsContext that draws onto an ebiten image.
// It is only valid inside ebiten's Draw callback.
type Context struct {
	Wireframe bool

	target  *ebiten.Image
	shaders *shaderCache

	vertices []ebiten.Vertex
	indices  []uint16
}

func NewContext() *Context {
	return &Context{
		shaders:  newShaderCache(ebiten.NewShader),
		vertices: make([]ebiten.Vertex, 0, maxBatchTriangles*3),
		indices:  make([]uint16, 0, maxBatchTriangles*3),
	}
}

// SetTarget selects the image subsequent draws render into.
func (c *Context) SetTarget(img *ebiten.Image) {
	c.target = img
}

func (c *Context) CompileShader(src geosphere.ShaderSource) (geosphere.Program, error) {
	return c.shaders.get(src)
}

func (c *Context) DrawMesh(p geosphere.Program, m *geosphere.Mesh, u geosphere.Uniforms) error {
	prog, ok := p.(*program)
	if !ok {
		return fmt.Errorf("program %T was not compiled by this context", p)
	}
	if c.target == nil {
		return errors.New("no render target")
	}
	if err := m.Validate(); err != nil {
		return err
	}

	b := c.target.Bounds()
	tris := projectMesh(m, u, float32(b.Dx()), float32(b.Dy()))

	opts := &ebiten.DrawTrianglesShaderOptions{
		Uniforms:  uniformMap(u),
		AntiAlias: true,
	}
	for start := 0; start < len(tris); start += maxBatchTriangles {
		end := min(start+maxBatchTriangles, len(tris))
		c.fillTriangles(tris[start:end], u.Color, prog.shader, opts)
	}

	if c.Wireframe {
		for _, t := range tris {
			drawTriangleOutline(c.target, t, outlineColor)
		}
	}
	return nil
}

func (c *Context) fillTriangles(tris []screenTriangle, clr color.RGBA, shader *ebiten.Shader, opts *ebiten.DrawTrianglesShaderOptions) {
	cr := float32(clr.R) / 255.0
	cg := float32(clr.G) / 255.0
	cb := float32(clr.B) / 255.0
	ca := float32(clr.A) / 255.0

	c.vertices = c.vertices[:0]
	c.indices = c.indices[:0]
	for _, t := range tris {
		for _, v := range t.v {
			c.indices = append(c.indices, uint16(len(c.vertices)))
			c.vertices = append(c.vertices, ebiten.Vertex{
				DstX:    v.x,
				DstY:    v.y,
				ColorR:  cr,
				ColorG:  cg,
				ColorB:  cb,
				ColorA:  ca,
				Custom0: v.normal.X,
				Custom1: v.normal.Y,
				Custom2: v.normal.Z,
			})
		}
	}
	c.target.DrawTrianglesShader(c.vertices, c.indices, shader, opts)
}

func drawTriangleOutline(dst *ebiten.Image, t screenTriangle, clr color.RGBA) {
	for i := range t.v {
		a, b := t.v[i], t.v[(i+1)%3]
		vector.StrokeLine(dst, a.x, a.y, b.x, b.y, 1, clr, true)
	}
}
