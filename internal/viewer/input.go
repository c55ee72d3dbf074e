//go:build !android

package viewer

import "github.com/go-gl/glfw/v3.3/glfw"

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

// SpeedDelta is the change in runner speed requested this frame by the
// up/down arrows.
func SpeedDelta(window *glfw.Window, dt float64) float64 {
	const rate = 20.0 // units/s per second held
	d := 0.0
	if window.GetKey(glfw.KeyUp) == glfw.Press {
		d += rate * dt
	}
	if window.GetKey(glfw.KeyDown) == glfw.Press {
		d -= rate * dt
	}
	return d
}
