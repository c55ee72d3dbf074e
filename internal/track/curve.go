package track

import "math"

// CurveSample is what a curve reports at one distance: the heading
// derivative and the lane half-widths on either side of the centerline.
type CurveSample struct {
	DeltaAngle float64
	Left       float64
	Right      float64
}

// Curve is a function of accumulated distance t. Implementations may keep a
// lookup cache that favours non-decreasing t; any order stays correct.
type Curve interface {
	Sample(t float64) CurveSample
}

// CurveKind identifies the base shape chosen for a section.
type CurveKind int

const (
	CurveConstant CurveKind = iota
	CurveWave
	CurveZigZag
	CurveDoubleWave
	CurveWiggle
	CurveKindCount
)

var curveKindNames = [...]string{"constant", "wave", "zigzag", "double-wave", "wiggle"}

func (k CurveKind) String() string {
	if k < 0 || k >= CurveKindCount {
		return "unknown"
	}
	return curveKindNames[k]
}

// ConstantCurve turns at a fixed rate with a fixed width.
type ConstantCurve struct {
	Rate  float64
	Width float64
}

func (c *ConstantCurve) Sample(float64) CurveSample {
	return CurveSample{DeltaAngle: c.Rate, Left: c.Width * 0.5, Right: c.Width * 0.5}
}

// SinCurve is an S-bend: the heading derivative follows one sine period
// over length.
type SinCurve struct {
	start     float64
	invPeriod float64
	magnitude float64
	width     float64
}

func NewSinCurve(start, length, magnitude, width float64) *SinCurve {
	return &SinCurve{
		start:     start,
		invPeriod: 2 * math.Pi / length,
		magnitude: magnitude,
		width:     width,
	}
}

func (c *SinCurve) Sample(t float64) CurveSample {
	half := c.width * 0.5
	return CurveSample{
		DeltaAngle: math.Sin((t-c.start)*c.invPeriod) * c.magnitude,
		Left:       half,
		Right:      half,
	}
}

type turn struct {
	Time      float64
	Duration  float64
	Direction float64
}

// ZigZagCurve runs straight and breaks into hard turns at random times.
type ZigZagCurve struct {
	turns    []turn
	start    float64
	maxAngle float64
	width    float64
	last     int
}

// ZigZagMaxAngle is the sharpest per-distance turn that cannot fold a lane
// of the given width over itself within one sampling step.
func ZigZagMaxAngle(res, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return ZigZagAngleScale * math.Asin(clampF(2*res/width, 0, 1))
}

// NewZigZagCurve lays out roughly approxCount turns across length.
func NewZigZagCurve(start, length float64, approxCount int, res, width float64, r *Rand) *ZigZagCurve {
	if approxCount < 1 {
		approxCount = 1
	}
	z := &ZigZagCurve{
		start:    start,
		width:    width,
		maxAngle: ZigZagMaxAngle(res, width),
	}

	avg := length / float64(approxCount)
	t := 0.0
	for t < length {
		distance := r.RangeF(avg*0.5, avg*1.5)
		duration := r.RangeF(res*5, res*15)
		t += distance
		z.turns = append(z.turns, turn{Time: t, Duration: duration, Direction: r.Sign()})
		t += duration
	}
	return z
}

func (z *ZigZagCurve) MaxAngle() float64 { return z.maxAngle }

func (z *ZigZagCurve) Sample(t float64) CurveSample {
	t -= z.start
	half := z.width * 0.5
	s := CurveSample{Left: half, Right: half}
	if len(z.turns) == 0 {
		return s
	}

	// Going backwards past the cached turn means an earlier turn may match.
	if t < z.turns[z.last].Time {
		z.last = 0
	}
	for z.last < len(z.turns)-1 && z.turns[z.last].Time+z.turns[z.last].Duration < t {
		z.last++
	}

	tr := z.turns[z.last]
	if t >= tr.Time && t <= tr.Time+tr.Duration {
		s.DeltaAngle = z.maxAngle * tr.Direction
	}
	return s
}

// WidthChange scales the lane half-widths from Time onwards.
type WidthChange struct {
	Time  float64
	Left  float64
	Right float64
}

// WidthModifier pinches or widens a base curve without touching its heading.
// Changes must be ordered by Time.
type WidthModifier struct {
	Base    Curve
	Changes []WidthChange
	last    int
}

func NewWidthModifier(base Curve, changes []WidthChange) *WidthModifier {
	return &WidthModifier{Base: base, Changes: changes, last: -1}
}

func (w *WidthModifier) Sample(t float64) CurveSample {
	s := w.Base.Sample(t)
	if w.last >= 0 && w.Changes[w.last].Time > t {
		w.last = -1
	}
	for w.last+1 < len(w.Changes) && w.Changes[w.last+1].Time <= t {
		w.last++
	}
	if w.last >= 0 {
		c := w.Changes[w.last]
		s.Left *= c.Left
		s.Right *= c.Right
	}
	return s
}

// Piece is one leg of a MultiCurve. Its curve sees piece-local time.
type Piece struct {
	Curve    Curve
	Duration float64
	start    float64
}

// MultiCurve chains curves back to back starting at start.
type MultiCurve struct {
	pieces []Piece
	start  float64
	last   int
}

func NewMultiCurve(start float64, pieces []Piece) *MultiCurve {
	t := 0.0
	for i := range pieces {
		pieces[i].start = t
		t += pieces[i].Duration
	}
	return &MultiCurve{pieces: pieces, start: start}
}

// Duration is the combined length of all pieces.
func (m *MultiCurve) Duration() float64 {
	if len(m.pieces) == 0 {
		return 0
	}
	p := m.pieces[len(m.pieces)-1]
	return p.start + p.Duration
}

func (m *MultiCurve) Sample(t float64) CurveSample {
	if len(m.pieces) == 0 {
		return CurveSample{}
	}
	local := t - m.start
	if local < m.pieces[m.last].start {
		m.last = 0
	}
	for m.last < len(m.pieces)-1 && local >= m.pieces[m.last].start+m.pieces[m.last].Duration {
		m.last++
	}
	p := m.pieces[m.last]
	return p.Curve.Sample(local - p.start)
}
