package track

import "math"

// Vec3 is a point or direction in world space (Y up).
type Vec3 struct {
	X, Y, Z float64
}

var Up = Vec3{0, 1, 0}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}
func (a Vec3) Dot(b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Len() float64 { return math.Sqrt(a.Dot(a)) }

// Normalize returns a unit vector, or the zero vector for degenerate input.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// Lerp interpolates from a (t=0) to b (t=1).
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Scale(1 - t).Add(b.Scale(t))
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// approach moves cur toward target by a fraction gain of the remaining gap.
func approach(cur, target, gain float64) float64 {
	return cur + (target-cur)*gain
}

// ChallengeValue maps a difficulty counter onto [min, max): min at
// challenge 0, approaching max as the counter grows.
func ChallengeValue(min, max float64, challenge int) float64 {
	return max + (min-max)/math.Sqrt(float64(challenge)+1)
}

// rectF is an axis-aligned rectangle in distance x cross-section space.
// Z runs along the track, X across it.
type rectF struct {
	X0, Z0 float64
	X1, Z1 float64
}

func (r rectF) Intersects(o rectF) bool {
	return r.X0 < o.X1 && r.X1 > o.X0 && r.Z0 < o.Z1 && r.Z1 > o.Z0
}

func (r rectF) Expand(dx, dz float64) rectF {
	return rectF{X0: r.X0 - dx, Z0: r.Z0 - dz, X1: r.X1 + dx, Z1: r.Z1 + dz}
}
