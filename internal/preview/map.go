// Package preview draws the live track window top-down in a terminal.
package preview

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"ribbon/internal/track"
)

const (
	railRune    = '·'
	blockRune   = '█'
	powerupRune = '*'
	runnerRune  = '@'

	// terminal cells are roughly twice as tall as wide
	cellAspect = 2.0
)

var (
	styleRail    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLow     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleMid     = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHigh    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	stylePowerup = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleRunner  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Map projects world X/Z onto screen cells around a focus point. Forward
// (+Z) is up, the left rail side (+X) is on the left.
type Map struct {
	screen tcell.Screen
	Scale  float64 // world units per column
	Focus  track.Vec3
}

func NewMap(screen tcell.Screen, scale float64) *Map {
	if scale <= 0 {
		scale = 1
	}
	return &Map{screen: screen, Scale: scale}
}

// Project returns the cell for a world position and whether it is on screen.
// The bottom row is reserved for the status line.
func (m *Map) Project(p track.Vec3) (int, int, bool) {
	w, h := m.screen.Size()
	col := w/2 - int(math.Round((p.X-m.Focus.X)/m.Scale))
	row := (h-1)/2 - int(math.Round((p.Z-m.Focus.Z)/(m.Scale*cellAspect)))
	return col, row, col >= 0 && col < w && row >= 0 && row < h-1
}

func (m *Map) put(p track.Vec3, r rune, style tcell.Style) {
	if col, row, ok := m.Project(p); ok {
		m.screen.SetContent(col, row, r, nil, style)
	}
}

func blockStyle(height float64) tcell.Style {
	switch {
	case height < track.BlockHeightLow:
		return styleLow
	case height < track.PrefabWallHeight*1.5:
		return styleMid
	default:
		return styleHigh
	}
}

// Draw clears the screen and renders sections, the runner and a status line.
func (m *Map) Draw(sections []*track.Section, runner track.Vec3, status string) {
	m.screen.Clear()
	for _, s := range sections {
		m.drawSection(s)
	}
	m.put(runner, runnerRune, styleRunner)
	m.drawStatus(status)
	m.screen.Show()
}

func (m *Map) drawSection(s *track.Section) {
	// ribbon vertices come in left/right pairs
	for _, p := range s.Ribbon.Positions {
		m.put(p, railRune, styleRail)
	}
	for _, b := range s.Blocks {
		style := blockStyle(b.Height)
		for _, cs := range b.Samples {
			// fill across the block at this cross-section
			steps := max(1, int(math.Ceil(cs.Right.Sub(cs.Left).Len()/m.Scale)))
			for i := 0; i <= steps; i++ {
				m.put(track.Lerp(cs.Left, cs.Right, float64(i)/float64(steps)), blockRune, style)
			}
		}
	}
	for _, p := range s.Powerups {
		if p.Resolved {
			m.put(p.Sampled, powerupRune, stylePowerup)
		}
	}
}

func (m *Map) drawStatus(status string) {
	w, h := m.screen.Size()
	row := h - 1
	col := 0
	for _, r := range status {
		if col >= w {
			break
		}
		m.screen.SetContent(col, row, r, nil, styleStatus)
		col++
	}
	for ; col < w; col++ {
		m.screen.SetContent(col, row, ' ', nil, styleStatus)
	}
}

// Status formats the status line.
func Status(seed int64, distance float64, live []*track.Section, paused bool) string {
	first, last := -1, -1
	if len(live) > 0 {
		first, last = live[0].Index, live[len(live)-1].Index
	}
	s := fmt.Sprintf(" seed %d  dist %.0f  sections %d..%d", seed, distance, first, last)
	if len(live) > 0 {
		cur := live[len(live)-1]
		s += fmt.Sprintf("  challenge %d  curve %s", cur.Challenge, cur.CurveKind)
	}
	if paused {
		s += "  [paused]"
	}
	return s
}
