package geosphere

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera holds the view and perspective projection matrices. The view
// starts as identity and is owned by the caller; the projection is fixed
// at construction.
type Camera struct {
	view       Mat4x4
	projection Mat4x4

	position Vec3
}

func NewCamera(aspect, fovDegrees, near, far float32) (*Camera, error) {
	if near == far {
		return nil, fmt.Errorf("%w: near plane equals far plane (%g)", ErrDegenerateFrustum, near)
	}
	if fovDegrees <= 0 || fovDegrees >= 180 {
		return nil, fmt.Errorf("%w: field of view %g outside (0, 180)", ErrDegenerateFrustum, fovDegrees)
	}
	if aspect <= 0 {
		return nil, fmt.Errorf("%w: aspect ratio %g", ErrDegenerateFrustum, aspect)
	}

	tanHalf := math32.Tan(Radians(fovDegrees) * 0.5)

	projection := Identity()
	projection[0] = 1 / (aspect * tanHalf)
	projection[5] = 1 / tanHalf
	projection[10] = -(far + near) / (far - near)
	projection[11] = -(2 * far * near) / (far - near)
	projection[14] = -1
	projection[15] = 0

	return &Camera{
		view:       Identity(),
		projection: projection,
	}, nil
}

func (c *Camera) View() Mat4x4 {
	return c.view
}

func (c *Camera) SetView(m Mat4x4) {
	c.view = m
}

func (c *Camera) Projection() Mat4x4 {
	return c.projection
}

// LookAt points the camera from eye towards target. The eye becomes the
// camera position used by AddAngle.
func (c *Camera) LookAt(eye, target, up Vec3) {
	c.view = FromMGL(mgl32.LookAtV(eye.MGL(), target.MGL(), up.MGL()))
	c.position = eye
}

func (c *Camera) Position() Vec3 {
	return c.position
}

func (c *Camera) SetPosition(p Vec3) {
	rot := c.view
	rot[3], rot[7], rot[11] = 0, 0, 0
	c.position = p
	c.view = rot.Mul(TranslationMatrix(p.Neg()))
}

// AddAngle turns the camera by x, y and z radians about its own axes. The
// eye position is unchanged.
func (c *Camera) AddAngle(x, y, z float32) {
	rotX := mgl32.HomogRotate3DX(-x)
	rotY := mgl32.HomogRotate3DY(-y)
	rotZ := mgl32.HomogRotate3DZ(-z)
	c.view = FromMGL(rotZ.Mul4(rotY).Mul4(rotX)).Mul(c.view)
}
