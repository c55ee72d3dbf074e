package viewer

import (
	"math"

	"ribbon/internal/fracture"
	"ribbon/internal/track"
)

const (
	CameraBack      = 12.0 // distance behind the runner
	CameraHeight    = 5.0
	CameraLookAhead = 20.0
	CameraLag       = 6.0 // 1/s, how quickly the eye catches up
	CameraFov       = 60 * math.Pi / 180
	CameraNear      = 0.1
	CameraFar       = 1500.0
)

// Camera trails the runner from behind and above.
type Camera struct {
	Eye    track.Vec3
	Target track.Vec3

	// Screen shake.
	Shake          track.Vec3 // current offset
	ShakeTimer     float64    // remaining shake time
	ShakeIntensity float64    // max offset magnitude
}

// Snap puts the camera straight into its follow position.
func (c *Camera) Snap(pos track.Vec3, heading float64) {
	c.Eye = followEye(pos, heading)
	c.Target = lookTarget(pos, heading)
}

// Follow eases the eye toward its follow position over dt seconds.
func (c *Camera) Follow(pos track.Vec3, heading, dt float64) {
	k := 1 - math.Exp(-CameraLag*dt)
	c.Eye = track.Lerp(c.Eye, followEye(pos, heading), k)
	c.Target = track.Lerp(c.Target, lookTarget(pos, heading), k)
}

func forward(heading float64) track.Vec3 {
	return track.Vec3{X: math.Sin(heading), Z: math.Cos(heading)}
}

func followEye(pos track.Vec3, heading float64) track.Vec3 {
	return pos.Sub(forward(heading).Scale(CameraBack)).Add(track.Up.Scale(CameraHeight))
}

func lookTarget(pos track.Vec3, heading float64) track.Vec3 {
	return pos.Add(forward(heading).Scale(CameraLookAhead))
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and picks a new random offset.
func (c *Camera) UpdateShake(dt float64, seed int64) {
	if c.ShakeTimer <= 0 {
		c.Shake = track.Vec3{}
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer = max(c.ShakeTimer-dt, 0)
	t := c.ShakeTimer
	r := track.NewRand(seed ^ int64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.Shake = track.Vec3{X: r.RangeF(-mag, mag), Y: r.RangeF(-mag, mag)}
}

func (c *Camera) View() Mat4 {
	return LookAt(c.Eye.Add(c.Shake), c.Target.Add(c.Shake), track.Up)
}

func (c *Camera) Projection(fbW, fbH int) Mat4 {
	aspect := 1.0
	if fbH > 0 {
		aspect = float64(fbW) / float64(fbH)
	}
	return Perspective(CameraFov, aspect, CameraNear, CameraFar)
}

// FractureView is the viewpoint handed to block shattering.
func (c *Camera) FractureView() fracture.View {
	f := c.Target.Sub(c.Eye).Normalize()
	return fracture.View{Eye: c.Eye, Right: f.Cross(track.Up).Normalize()}
}
