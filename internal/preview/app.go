package preview

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"ribbon/internal/track"
)

const frameTime = 33 * time.Millisecond

// App walks a runner along the generated track and redraws the map each
// frame. Crossing a section trigger streams the next section in.
type App struct {
	screen  tcell.Screen
	gen     *track.Generator
	tracker *track.Tracker
	log     *slog.Logger
	Map     *Map

	Speed    float64
	distance float64
	runner   track.Vec3
	paused   bool
}

func NewApp(screen tcell.Screen, gen *track.Generator, tracker *track.Tracker, speed float64, log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		screen:  screen,
		gen:     gen,
		tracker: tracker,
		log:     log,
		Map:     NewMap(screen, 1),
		Speed:   speed,
	}
}

func (a *App) Distance() float64 { return a.distance }
func (a *App) Paused() bool        { return a.paused }

// Step moves the runner by dt seconds. The runner stops at the end of the
// generated track rather than leaving it.
func (a *App) Step(dt float64) {
	if a.paused || dt <= 0 {
		return
	}
	next := a.distance + a.Speed*dt
	pos, _, ok := a.gen.PointAt(next)
	if !ok {
		return
	}
	a.distance = next
	a.runner = pos
	if n := a.tracker.Update(pos); n > 0 {
		a.log.Debug("streamed sections", "count", n, "distance", a.distance)
	}
	a.Map.Focus = pos
}

// Restart reseeds the generator and puts the runner back at the start.
func (a *App) Restart(seed int64) {
	a.gen.Reset(seed)
	a.tracker.Reset()
	a.tracker.Prime()
	a.distance = 0
	a.runner = track.Vec3{}
	a.Map.Focus = track.Vec3{}
	a.log.Info("restarted", "seed", seed)
}

// HandleEvent applies a key or resize event. It returns false to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.paused = !a.paused
			case '+', '=':
				a.Map.Scale = max(0.25, a.Map.Scale/1.5)
			case '-':
				a.Map.Scale = min(16, a.Map.Scale*1.5)
			case 'r':
				a.Restart(a.gen.Seed() + 1)
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) Draw() {
	a.Map.Draw(a.gen.Live(), a.runner, Status(a.gen.Seed(), a.tracker.Distance(), a.gen.Live(), a.paused))
}

// Run drives the app until the context ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			a.Step(now.Sub(last).Seconds())
			last = now
			a.Draw()
		}
	}
}
