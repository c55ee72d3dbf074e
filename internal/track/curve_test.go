package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChallengeValue_Shape(t *testing.T) {
	assert.Equal(t, 1.0, ChallengeValue(1, 4, 0))
	assert.Equal(t, 40.0, ChallengeValue(BaseWidth, MinWidth, 0))
	assert.InDelta(t, 4.0, ChallengeValue(1, 4, 1_000_000_000), 1e-3)

	// rising and falling ranges are both monotonic
	prevUp := ChallengeValue(0.01, 0.05, 0)
	prevDown := ChallengeValue(25, 5, 0)
	for c := 1; c < 200; c++ {
		up := ChallengeValue(0.01, 0.05, c)
		down := ChallengeValue(25, 5, c)
		assert.Greater(t, up, prevUp)
		assert.Less(t, down, prevDown)
		assert.Less(t, up, 0.05)
		assert.Greater(t, down, 5.0)
		prevUp, prevDown = up, down
	}
}

func TestConstantCurve(t *testing.T) {
	c := &ConstantCurve{Rate: 0.01, Width: 30}
	for _, tt := range []float64{0, 12.5, 1e6} {
		s := c.Sample(tt)
		assert.Equal(t, CurveSample{DeltaAngle: 0.01, Left: 15, Right: 15}, s)
	}
}

func TestSinCurve(t *testing.T) {
	c := NewSinCurve(100, 40, 0.5, 20)
	assert.InDelta(t, 0, c.Sample(100).DeltaAngle, 1e-12)
	assert.InDelta(t, 0.5, c.Sample(110).DeltaAngle, 1e-12)
	assert.InDelta(t, 0, c.Sample(120).DeltaAngle, 1e-12)
	assert.InDelta(t, -0.5, c.Sample(130).DeltaAngle, 1e-12)
	assert.Equal(t, 10.0, c.Sample(130).Left)
	assert.Equal(t, 10.0, c.Sample(130).Right)
}

func TestZigZagMaxAngle(t *testing.T) {
	assert.InDelta(t, 0.9*math.Asin(2*0.5/40), ZigZagMaxAngle(0.5, 40), 1e-12)
	// too narrow for the step: clamped instead of NaN
	assert.InDelta(t, 0.9*math.Pi/2, ZigZagMaxAngle(0.5, 0.5), 1e-12)
	assert.Zero(t, ZigZagMaxAngle(0.5, 0))
}

func TestZigZagCurve_TurnsInsideEvents(t *testing.T) {
	z := NewZigZagCurve(1000, 500, 6, 0.5, 30, NewRand(3))
	require.NotEmpty(t, z.turns)

	for i := 1; i < len(z.turns); i++ {
		prev := z.turns[i-1]
		assert.Greater(t, z.turns[i].Time, prev.Time+prev.Duration, "turns are ordered and disjoint")
	}

	for _, tr := range z.turns {
		mid := 1000 + tr.Time + tr.Duration/2
		assert.Equal(t, z.MaxAngle()*tr.Direction, z.Sample(mid).DeltaAngle)
	}
	assert.Zero(t, z.Sample(1000).DeltaAngle)
}

func TestZigZagCurve_OrderIndependent(t *testing.T) {
	forward := NewZigZagCurve(0, 500, 8, 0.5, 30, NewRand(11))
	backward := NewZigZagCurve(0, 500, 8, 0.5, 30, NewRand(11))

	var want []float64
	for x := 0.0; x < 500; x += 0.5 {
		want = append(want, forward.Sample(x).DeltaAngle)
	}
	i := len(want) - 1
	for x := 499.5; x >= 0; x -= 0.5 {
		assert.Equal(t, want[i], backward.Sample(x).DeltaAngle, "t=%v", x)
		i--
	}
}

func TestWidthModifier(t *testing.T) {
	base := &ConstantCurve{Rate: 0.002, Width: 40}
	w := NewWidthModifier(base, []WidthChange{
		{Time: 10, Left: 0.5, Right: 0.8},
		{Time: 20, Left: 1, Right: 1},
	})

	assert.Equal(t, CurveSample{DeltaAngle: 0.002, Left: 20, Right: 20}, w.Sample(5))
	assert.Equal(t, CurveSample{DeltaAngle: 0.002, Left: 10, Right: 16}, w.Sample(10))
	assert.Equal(t, CurveSample{DeltaAngle: 0.002, Left: 10, Right: 16}, w.Sample(19.5))
	assert.Equal(t, CurveSample{DeltaAngle: 0.002, Left: 20, Right: 20}, w.Sample(25))
	// going back re-scans
	assert.Equal(t, CurveSample{DeltaAngle: 0.002, Left: 10, Right: 16}, w.Sample(15))
	assert.Equal(t, CurveSample{DeltaAngle: 0.002, Left: 20, Right: 20}, w.Sample(0))
}

func TestMultiCurve(t *testing.T) {
	m := NewMultiCurve(100, []Piece{
		{Curve: &ConstantCurve{Rate: 1, Width: 10}, Duration: 10},
		{Curve: NewSinCurve(0, 20, 2, 10), Duration: 20},
		{Curve: &ConstantCurve{Rate: 3, Width: 10}, Duration: 10},
	})
	assert.Equal(t, 40.0, m.Duration())

	assert.Equal(t, 1.0, m.Sample(105).DeltaAngle)
	assert.InDelta(t, 2.0, m.Sample(115).DeltaAngle, 1e-12) // quarter period of piece two
	assert.Equal(t, 3.0, m.Sample(135).DeltaAngle)
	assert.Equal(t, 3.0, m.Sample(500).DeltaAngle, "past the end keeps the last piece")
	assert.Equal(t, 1.0, m.Sample(101).DeltaAngle)
}
