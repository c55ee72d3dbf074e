//go:build !android

package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"ribbon/internal/fracture"
	"ribbon/internal/track"
)

type Config struct {
	Options   track.Options
	Seed      int64
	Width     int
	Height    int
	Speed     float64
	Challenge func(index int) int
}

// Run opens the window and blocks until it is closed or ctx ends. It must
// be called from the main goroutine.
func Run(ctx context.Context, cfg Config, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	runtime.LockOSThread()

	window, err := initWindow(cfg.Width, cfg.Height, "ribbon")
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	opts := cfg.Options
	opts.OnEvict = func(s *track.Section) {
		rend.Release(s)
		log.Debug("section evicted", "section", s.Index)
	}
	gen := track.New(opts, log)
	tracker := track.NewTracker(gen)
	tracker.Challenge = cfg.Challenge
	runner := NewRunner(gen, tracker, cfg.Speed)
	runner.Restart(cfg.Seed)

	debris := fracture.NewDebris(fracture.MaxDebris)
	input := NewInput()
	var cam Camera
	cam.Snap(runner.Pos, runner.Heading)

	log.Info("viewer started", "seed", cfg.Seed, "window", gen.Options().Window)

	paused := false
	blasts := int64(0)
	frame := int64(0)
	last := glfw.GetTime()
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			break
		}
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}
		frame++

		glfw.PollEvents()
		if input.JustPressed(window, glfw.KeyEscape) {
			window.SetShouldClose(true)
		}
		if input.JustPressed(window, glfw.KeyP) {
			paused = !paused
		}
		if input.JustPressed(window, glfw.KeyR) {
			debris.Clear()
			runner.Restart(gen.Seed() + 1)
			cam.Snap(runner.Pos, runner.Heading)
			log.Info("restarted", "seed", gen.Seed())
		}
		if input.JustPressed(window, glfw.KeyB) {
			blasts++
			n := runner.Blast(debris, cam.FractureView(), gen.Seed()^blasts)
			if n > 0 {
				cam.AddShake(0.4, 0.35)
			}
			log.Debug("blast", "chunks", n, "distance", runner.Distance)
		}
		runner.Speed = max(0, runner.Speed+SpeedDelta(window, dt))

		if !paused {
			if n := runner.Step(dt); n > 0 {
				log.Debug("streamed sections", "count", n, "distance", tracker.Distance())
			}
			debris.Update(dt)
		}
		cam.Follow(runner.Pos, runner.Heading, dt)
		cam.UpdateShake(dt, frame)

		live := gen.Live()
		rend.Sync(live)
		fbW, fbH := window.GetFramebufferSize()
		rend.Draw(live, debris, &cam, fbW, fbH)

		window.SwapBuffers()
	}

	st := gen.Stats()
	log.Info("viewer closed", "distance", tracker.Distance(), "sections", st.Sections, "evicted", st.Evicted)
	return nil
}
