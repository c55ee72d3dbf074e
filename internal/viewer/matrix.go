package viewer

import (
	"math"

	"ribbon/internal/track"
)

// Mat4 is a column-major 4x4 matrix, laid out the way glUniformMatrix4fv
// expects it without transposing.
type Mat4 [16]float32

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func (m Mat4) at(row, col int) float32 { return m[col*4+row] }

// Mul returns m*o.
func (m Mat4) Mul(o Mat4) Mat4 {
	var out Mat4
	for c := range 4 {
		for r := range 4 {
			var sum float32
			for k := range 4 {
				sum += m.at(r, k) * o.at(k, c)
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Apply transforms a point (w=1) and returns the homogeneous result.
func (m Mat4) Apply(p track.Vec3) [4]float64 {
	v := [4]float64{p.X, p.Y, p.Z, 1}
	var out [4]float64
	for r := range 4 {
		for k := range 4 {
			out[r] += float64(m.at(r, k)) * v[k]
		}
	}
	return out
}

// Perspective builds a right-handed projection; fovy is in radians.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	nf := 1 / (near - far)
	return Mat4{
		float32(f / aspect), 0, 0, 0,
		0, float32(f), 0, 0,
		0, 0, float32((far + near) * nf), -1,
		0, 0, float32(2 * far * near * nf), 0,
	}
}

// LookAt builds a view matrix for an eye looking at center.
func LookAt(eye, center, up track.Vec3) Mat4 {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		float32(s.X), float32(u.X), float32(-f.X), 0,
		float32(s.Y), float32(u.Y), float32(-f.Y), 0,
		float32(s.Z), float32(u.Z), float32(-f.Z), 0,
		float32(-s.Dot(eye)), float32(-u.Dot(eye)), float32(f.Dot(eye)), 1,
	}
}
