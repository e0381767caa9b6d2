package geosphere

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Mat4x4 is a 4x4 matrix stored row-major. Points are column vectors, so
// translation lives in elements 3, 7 and 11.
type Mat4x4 [16]float32

func Identity() Mat4x4 {
	var m Mat4x4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

func Radians(degrees float32) float32 {
	return math32.Pi * degrees / 180
}

func TranslationMatrix(v Vec3) Mat4x4 {
	m := Identity()
	m[3] = v.X
	m[7] = v.Y
	m[11] = v.Z
	return m
}

func ScaleMatrix(v Vec3) Mat4x4 {
	m := Identity()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

// RotationMatrix rotates by degrees around axis, which must be unit length.
func RotationMatrix(degrees float32, axis Vec3) Mat4x4 {
	d := Radians(degrees)
	c, s := math32.Cos(d), math32.Sin(d)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	m := Identity()
	m[0] = x*x*t + c
	m[1] = y*x*t - z*s
	m[2] = z*x*t + y*s
	m[4] = x*y*t + z*s
	m[5] = y*y*t + c
	m[6] = z*y*t - x*s
	m[8] = x*z*t - y*s
	m[9] = y*z*t + x*s
	m[10] = z*z*t + c
	return m
}

func (m Mat4x4) At(row, col int) float32 {
	return m[row*4+col]
}

// Mul returns m * b.
func (m Mat4x4) Mul(b Mat4x4) Mat4x4 {
	var c Mat4x4
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			var sum float32
			for i := 0; i < 4; i++ {
				sum += m[y*4+i] * b[i*4+x]
			}
			c[y*4+x] = sum
		}
	}
	return c
}

// Translate, Scale and Rotate pre-multiply an elementary matrix, so each
// call is applied after everything accumulated so far.
func (m *Mat4x4) Translate(v Vec3) {
	*m = TranslationMatrix(v).Mul(*m)
}

func (m *Mat4x4) Scale(v Vec3) {
	*m = ScaleMatrix(v).Mul(*m)
}

func (m *Mat4x4) Rotate(degrees float32, axis Vec3) {
	*m = RotationMatrix(degrees, axis).Mul(*m)
}

func (m Mat4x4) Transpose() Mat4x4 {
	var t Mat4x4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			t[c*4+r] = m[r*4+c]
		}
	}
	return t
}

func (m Mat4x4) MulVec4(v [4]float32) [4]float32 {
	var out [4]float32
	for r := 0; r < 4; r++ {
		out[r] = m[r*4]*v[0] + m[r*4+1]*v[1] + m[r*4+2]*v[2] + m[r*4+3]*v[3]
	}
	return out
}

// TransformPoint applies the full affine transform (w = 1). The projective
// row is ignored.
func (m Mat4x4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// TransformDirection applies only the upper 3x3 block, which makes it
// suitable for direction vectors.
func (m Mat4x4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		m[0]*d.X + m[1]*d.Y + m[2]*d.Z,
		m[4]*d.X + m[5]*d.Y + m[6]*d.Z,
		m[8]*d.X + m[9]*d.Y + m[10]*d.Z,
	}
}

func (m Mat4x4) Translation() Vec3 {
	return Vec3{m[3], m[7], m[11]}
}

func (m Mat4x4) ApproxEqual(o Mat4x4, eps float32) bool {
	for i := range m {
		if math32.Abs(m[i]-o[i]) > eps {
			return false
		}
	}
	return true
}

// FromMGL converts a column-major mathgl matrix.
func FromMGL(src mgl32.Mat4) Mat4x4 {
	var m Mat4x4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			m[r*4+c] = src.At(r, c)
		}
	}
	return m
}

func (m Mat4x4) MGL() mgl32.Mat4 {
	var out mgl32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.Set(r, c, m[r*4+c])
		}
	}
	return out
}

func (m Mat4x4) String() string {
	var sb strings.Builder
	for r := 0; r < 4; r++ {
		if r > 0 {
			sb.WriteString("\n")
		}
		for c := 0; c < 4; c++ {
			if c > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%f", m[r*4+c]))
		}
	}
	return sb.String()
}
