package track

import (
	"log/slog"
	"math"
	"sort"
)

// Options controls the generator. Zero fields take defaults.
type Options struct {
	Res            float64
	SectionLength  float64
	Window         int
	BuildObstacles bool
	BuildPowerups  bool

	// OnEvict is called with a section just before its buffers are dropped.
	OnEvict func(*Section)
}

func DefaultOptions() Options {
	return Options{
		Res:            DefaultRes,
		SectionLength:  DefaultSectionLength,
		Window:         DefaultWindow,
		BuildObstacles: true,
		BuildPowerups:  true,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Res <= 0 {
		o.Res = d.Res
	}
	o.Res = min(o.Res, MaxRes)
	if o.SectionLength <= 0 {
		o.SectionLength = d.SectionLength
	}
	// whole number of steps so sections abut exactly
	o.SectionLength = math.Max(1, math.Round(o.SectionLength/o.Res)) * o.Res
	if o.Window < 1 {
		o.Window = d.Window
	}
	o.Window = max(o.Window, MinWindow)
	return o
}

// Stats summarises generation work since the last Reset.
type Stats struct {
	Sections      int
	Blocks        int
	Powerups      int
	Fills         int
	FillsCapped   int
	FillAttempts  int
	Evicted       int
	PrefabsByKind [PrefabKindCount]int
}

// Generator produces track sections one at a time and keeps a sliding
// window of them. It is not safe for concurrent use.
type Generator struct {
	opts Options
	log  *slog.Logger

	seed  int64
	rng   *Rand
	cur   cursor
	next  int
	live  []*Section
	stats Stats

	checkpoints planeQueue
	triggers    planeQueue
}

// New returns a generator seeded with DefaultSeed. A nil logger discards.
func New(opts Options, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	g := &Generator{opts: opts.normalized(), log: log}
	g.Reset(DefaultSeed)
	return g
}

func (g *Generator) Options() Options { return g.opts }
func (g *Generator) Seed() int64      { return g.seed }
func (g *Generator) Stats() Stats     { return g.stats }

// Distance is how far the path has been generated.
func (g *Generator) Distance() float64 { return g.cur.t }

// Live returns the sections currently in the window, oldest first.
func (g *Generator) Live() []*Section {
	out := make([]*Section, len(g.live))
	copy(out, g.live)
	return out
}

// PointAt looks up the centerline position and heading at distance t among
// the live sections.
func (g *Generator) PointAt(t float64) (Vec3, float64, bool) {
	for _, s := range g.live {
		if s.Contains(t) {
			return s.PointAt(t)
		}
	}
	return Vec3{}, 0, false
}

// Reset reseeds the random stream and clears all state.
func (g *Generator) Reset(seed int64) {
	g.seed = seed
	g.rng = NewRand(seed)
	g.Clear()
	g.stats = Stats{}
	g.log.Debug("generator reset", "seed", seed)
}

// Clear drops every live section and pending plane and rewinds the path to
// the origin. The random stream carries on.
func (g *Generator) Clear() {
	for _, s := range g.live {
		g.evict(s)
	}
	g.live = g.live[:0]
	g.cur = newCursor(g.opts.Res)
	g.next = 0
	g.checkpoints.clear()
	g.triggers.clear()
}

// Advance generates the next section, queues its planes and, once the window
// is over capacity, evicts the oldest section.
func (g *Generator) Advance(challenge int) *Section {
	s := g.build(challenge)
	g.live = append(g.live, s)
	for len(g.live) > g.opts.Window {
		old := g.live[0]
		g.live = g.live[1:]
		g.evict(old)
	}
	return s
}

func (g *Generator) evict(s *Section) {
	if g.opts.OnEvict != nil {
		g.opts.OnEvict(s)
	}
	s.release()
	g.stats.Evicted++
	g.log.Debug("section evicted", "section", s.Index)
}

func (g *Generator) PeekCheckpoint() (Plane, bool)    { return g.checkpoints.peek() }
func (g *Generator) DequeueCheckpoint() (Plane, bool) { return g.checkpoints.pop() }
func (g *Generator) PendingCheckpoints() int          { return g.checkpoints.Len() }
func (g *Generator) PeekTrigger() (Plane, bool)       { return g.triggers.peek() }
func (g *Generator) DequeueTrigger() (Plane, bool)    { return g.triggers.pop() }
func (g *Generator) PendingTriggers() int             { return g.triggers.Len() }

// buildCurve picks the section's base curve from the curve and width
// counters. Leftover curve points select the shape, the rest sets intensity.
func (g *Generator) buildCurve(start float64, c Counters) (Curve, CurveKind, float64) {
	curveChallenge := c[CategoryCurve]
	intensity := 0
	if curveChallenge > 0 {
		intensity = g.rng.Range(1, curveChallenge)
		curveChallenge -= intensity
	}
	width := ChallengeValue(BaseWidth, MinWidth, c[CategoryWidth])
	direction := g.rng.Sign()
	length := g.opts.SectionLength

	kind := CurveKind(curveChallenge)
	if kind >= CurveKindCount {
		kind = CurveKind(g.rng.Intn(int(CurveKindCount)))
	}

	switch kind {
	case CurveWave, CurveDoubleWave:
		l := length
		if kind == CurveDoubleWave {
			l *= 0.5
		}
		rate := ChallengeValue(WaveRateLow, WaveRateHigh, intensity)
		return NewSinCurve(start, l, rate*direction, width), kind, width
	case CurveZigZag:
		return NewZigZagCurve(start, length, min(ZigZagMaxTurns, intensity), g.opts.Res, width, g.rng), kind, width
	case CurveWiggle:
		return g.wiggle(start, length, intensity, direction, width), kind, width
	default:
		rate := ChallengeValue(0, CurveRateMax, intensity)
		return &ConstantCurve{Rate: rate * direction, Width: width}, CurveConstant, width
	}
}

// wiggle alternates short S-bends with straights, flipping direction on
// every bend.
func (g *Generator) wiggle(start, length float64, intensity int, direction, width float64) Curve {
	const legs = 8
	leg := length / legs
	rate := ChallengeValue(WaveRateHigh, WaveRateHigh*2, intensity)
	pieces := make([]Piece, 0, legs)
	for i := range legs {
		if i%2 == 1 {
			pieces = append(pieces, Piece{Curve: &ConstantCurve{Width: width}, Duration: leg})
			continue
		}
		pieces = append(pieces, Piece{Curve: NewSinCurve(0, leg, rate*direction, width), Duration: leg})
		direction = -direction
	}
	return NewMultiCurve(start, pieces)
}

func (g *Generator) build(challenge int) *Section {
	counters := drawCounters(g.rng, challenge)
	s := &Section{
		Index:     g.next,
		Start:     g.cur.t,
		Length:    g.opts.SectionLength,
		Challenge: challenge,
		Counters:  counters,
	}
	g.next++

	base, kind, width := g.buildCurve(s.Start, counters)
	s.CurveKind = kind
	s.Width = width

	b := &builder{rng: g.rng, log: g.log.With("section", s.Index)}
	if g.opts.BuildObstacles {
		b.appendPrefabs(s.Start, s.Length, counters)
	}

	s.Curve = base
	if len(b.widths) > 0 {
		s.Curve = NewWidthModifier(base, b.widths)
	}

	sort.SliceStable(b.blocks, func(i, j int) bool { return b.blocks[i].Start < b.blocks[j].Start })
	s.Blocks = b.blocks
	s.Prefabs = b.prefabs

	if g.opts.BuildPowerups {
		s.Powerups = b.placePowerups(s.Start, s.End(), powerupCount(counters[CategoryRandom]))
	}

	g.synthesize(s)

	g.stats.Sections++
	g.stats.Blocks += len(s.Blocks)
	g.stats.Powerups += len(s.Powerups)
	g.stats.Fills += b.fills
	g.stats.FillsCapped += b.gaveUp
	g.stats.FillAttempts += b.attempts
	for _, k := range s.Prefabs {
		g.stats.PrefabsByKind[k]++
	}

	g.log.Debug("section generated",
		"section", s.Index,
		"start", s.Start,
		"challenge", challenge,
		"curve", kind.String(),
		"blocks", len(s.Blocks),
		"powerups", len(s.Powerups),
	)
	return s
}
