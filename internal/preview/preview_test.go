package preview

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ribbon/internal/track"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

func newApp(t *testing.T, screen tcell.Screen) *App {
	t.Helper()
	g := track.New(track.DefaultOptions(), nil)
	tr := track.NewTracker(g)
	tr.Challenge = func(int) int { return 0 }
	tr.Prime()
	return NewApp(screen, g, tr, 50, nil)
}

func rowText(screen tcell.SimulationScreen, row int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for col := range w {
		r, _, _, _ := screen.GetContent(col, row)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestMap_Project(t *testing.T) {
	screen := newScreen(t)
	m := NewMap(screen, 1)

	col, row, ok := m.Project(track.Vec3{})
	require.True(t, ok)
	assert.Equal(t, 40, col)
	assert.Equal(t, 11, row)

	// ahead is up, the +X side is left
	col, row, _ = m.Project(track.Vec3{X: 5, Z: 10})
	assert.Equal(t, 35, col)
	assert.Equal(t, 6, row)

	_, _, ok = m.Project(track.Vec3{Z: 1000})
	assert.False(t, ok)
	_, _, ok = m.Project(track.Vec3{Z: -24})
	assert.False(t, ok, "status row is reserved")
}

func TestMap_DrawPutsRunnerAndStatus(t *testing.T) {
	screen := newScreen(t)
	app := newApp(t, screen)
	app.Draw()

	r, _, _, _ := screen.GetContent(40, 11)
	assert.Equal(t, runnerRune, r)
	assert.Contains(t, rowText(screen, 23), "seed 1234567890")

	// straight track: the rails are 20 units either side of the start line
	r, _, _, _ = screen.GetContent(20, 11)
	assert.Equal(t, railRune, r)
	r, _, _, _ = screen.GetContent(60, 11)
	assert.Equal(t, railRune, r)
}

func TestApp_StepStreamsSections(t *testing.T) {
	app := newApp(t, newScreen(t))
	for range 200 {
		app.Step(0.1)
	}
	assert.InDelta(t, 1000, app.Distance(), 1e-6)
	// primed 0..2, then triggers at 0 and 500 were crossed
	assert.Equal(t, 5, app.tracker.Advances())
	assert.Equal(t, 1, app.gen.Live()[0].Index)
}

func TestApp_StopsAtTrackEnd(t *testing.T) {
	app := newApp(t, newScreen(t))
	app.Speed = 10_000
	app.Step(1)
	assert.Zero(t, app.Distance(), "a jump past the generated track is refused")
}

func TestApp_Keys(t *testing.T) {
	screen := newScreen(t)
	app := newApp(t, screen)

	assert.True(t, app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)))
	assert.True(t, app.Paused())
	app.Step(1)
	assert.Zero(t, app.Distance())

	scale := app.Map.Scale
	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone))
	assert.Greater(t, app.Map.Scale, scale)

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	assert.Equal(t, int64(track.DefaultSeed+1), app.gen.Seed())
	assert.Len(t, app.gen.Live(), track.DefaultWindow-1)

	assert.False(t, app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))
	assert.False(t, app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestStatus(t *testing.T) {
	assert.Contains(t, Status(3, 12, nil, true), "[paused]")
	assert.Contains(t, Status(3, 12, nil, false), "sections -1..-1")
}
