package geosphere

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type Vec3 struct {
	X float32
	Y float32
	Z float32
}

var (
	Zero  = Vec3{0, 0, 0}
	Up    = Vec3{0, 1, 0}
	Down  = Vec3{0, -1, 0}
	Front = Vec3{0, 0, 1}
	Back  = Vec3{0, 0, -1}
	Left  = Vec3{1, 0, 0}
	Right = Vec3{-1, 0, 0}
)

// Vec3At reads the i-th 3-component group out of a flat float slice.
func Vec3At(flat []float32, i int) Vec3 {
	return Vec3{flat[i*3], flat[i*3+1], flat[i*3+2]}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Neg() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) DivScalar(s float32) Vec3 {
	return Vec3{v.X / s, v.Y / s, v.Z / s}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns v × o using the right hand rule.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float32 {
	return v.Dot(v)
}

func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalized divides v by its length. A zero vector yields NaN components;
// use Unit when the input is not known to be non-zero.
func (v Vec3) Normalized() Vec3 {
	return v.DivScalar(v.Length())
}

// Unit is the checked form of Normalized.
func (v Vec3) Unit() (Vec3, error) {
	l := v.Length()
	if l == 0 {
		return Vec3{}, ErrZeroLength
	}
	return v.DivScalar(l), nil
}

func (v Vec3) IsNaN() bool {
	return math32.IsNaN(v.X) || math32.IsNaN(v.Y) || math32.IsNaN(v.Z)
}

func (v Vec3) ApproxEqual(o Vec3, eps float32) bool {
	return math32.Abs(v.X-o.X) <= eps &&
		math32.Abs(v.Y-o.Y) <= eps &&
		math32.Abs(v.Z-o.Z) <= eps
}

func (v Vec3) MGL() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

func Vec3FromMGL(v mgl32.Vec3) Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Sum adds all vectors, returning Zero for no arguments.
func Sum(vs ...Vec3) Vec3 {
	acc := Zero
	for _, v := range vs {
		acc = acc.Add(v)
	}
	return acc
}
