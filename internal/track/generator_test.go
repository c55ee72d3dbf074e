package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ribbonTail(s *Section) (Vec3, Vec3) {
	n := len(s.Ribbon.Positions)
	return s.Ribbon.Positions[n-2], s.Ribbon.Positions[n-1]
}

func TestOptions_Normalized(t *testing.T) {
	o := Options{SectionLength: 100.2, Res: 0.5}.normalized()
	assert.Equal(t, 100.0, o.SectionLength)
	assert.Equal(t, DefaultWindow, o.Window)

	d := Options{}.normalized()
	assert.Equal(t, DefaultRes, d.Res)
	assert.Equal(t, DefaultSectionLength, d.SectionLength)

	coarse := Options{Res: 2, SectionLength: 100, Window: 1}.normalized()
	assert.Equal(t, MaxRes, coarse.Res)
	assert.Equal(t, MinWindow, coarse.Window)
	assert.Equal(t, 100.0, coarse.SectionLength)
}

func TestGenerator_BlocksSampledAtAnyRes(t *testing.T) {
	for _, res := range []float64{0.25, MaxRes, 2} {
		opts := DefaultOptions()
		opts.Res = res
		opts.Window = 10
		g := New(opts, nil)
		g.Reset(7)
		blocks := 0
		for i := range 10 {
			s := g.Advance(4 * i)
			for j, b := range s.Blocks {
				blocks++
				require.GreaterOrEqual(t, len(b.Samples), 2, "res %v section %d block %d", res, i, j)
				lo, hi := b.Mesh.Bounds()
				assert.Positive(t, hi.Sub(lo).Len())
			}
		}
		assert.Positive(t, blocks)
	}
}

func TestGenerator_DefaultScenario(t *testing.T) {
	g := New(DefaultOptions(), nil)
	g.Reset(1234567890)

	var secs []*Section
	for _, c := range []int{0, 1, 2} {
		secs = append(secs, g.Advance(c))
	}

	s0 := secs[0]
	assert.Equal(t, 0, s0.Index)
	assert.Equal(t, 0.0, s0.Start)
	assert.Equal(t, 500.0, s0.Length)
	assert.Zero(t, s0.SpecialPrefabs())
	assert.Equal(t, CurveConstant, s0.CurveKind)
	assert.Equal(t, &ConstantCurve{Rate: 0, Width: BaseWidth}, s0.Curve)

	// straight ahead: the first trigger faces +z through the origin
	assert.Equal(t, Plane{Normal: Vec3{0, 0, 1}, Offset: 0}, s0.Trigger)

	for i, s := range secs {
		assert.Equal(t, i, s.Index)
		assert.Equal(t, float64(i)*500, s.Start)
		assert.Equal(t, 2*1001, s.Ribbon.VertexCount())
		assert.Equal(t, 2*1000, s.Ribbon.TriangleCount())
		assert.Len(t, s.Centerline, 1000)
	}
	assert.Equal(t, 1500.0, g.Distance())
	assert.Equal(t, 3000, g.PendingCheckpoints())
	assert.Equal(t, 3, g.PendingTriggers())
}

func TestGenerator_Deterministic(t *testing.T) {
	challenges := []int{0, 3, 7, 12, 20}
	run := func(g *Generator) []*Section {
		var out []*Section
		for _, c := range challenges {
			out = append(out, g.Advance(c))
		}
		return out
	}

	opts := DefaultOptions()
	opts.Window = len(challenges)
	a := New(opts, nil)
	a.Reset(99)
	b := New(opts, nil)
	b.Advance(5) // state before the reset must not leak through
	b.Reset(99)

	sa, sb := run(a), run(b)
	for i := range sa {
		assert.Equal(t, sa[i].Counters, sb[i].Counters)
		assert.Equal(t, sa[i].CurveKind, sb[i].CurveKind)
		assert.Equal(t, sa[i].Prefabs, sb[i].Prefabs)
		require.Equal(t, len(sa[i].Blocks), len(sb[i].Blocks))
		for j := range sa[i].Blocks {
			assert.Equal(t, sa[i].Blocks[j].Mesh, sb[i].Blocks[j].Mesh)
		}
		assert.Equal(t, sa[i].Ribbon, sb[i].Ribbon)
		require.Equal(t, len(sa[i].Powerups), len(sb[i].Powerups))
		for j := range sa[i].Powerups {
			assert.Equal(t, *sa[i].Powerups[j], *sb[i].Powerups[j])
		}
	}
}

func TestGenerator_DifferentSeedsDiffer(t *testing.T) {
	a := New(DefaultOptions(), nil)
	a.Reset(1)
	b := New(DefaultOptions(), nil)
	b.Reset(2)
	assert.NotEqual(t, a.Advance(10).Ribbon, b.Advance(10).Ribbon)
}

func TestGenerator_SeamsAreContinuous(t *testing.T) {
	g := New(DefaultOptions(), nil)
	g.Reset(2024)
	prev := g.Advance(0)
	for c := 1; c < 12; c++ {
		s := g.Advance(c * 3)
		l, r := ribbonTail(prev)
		assert.Equal(t, l, s.Ribbon.Positions[0], "section %d", s.Index)
		assert.Equal(t, r, s.Ribbon.Positions[1], "section %d", s.Index)
		assert.Equal(t, prev.End(), s.Start)
		prev = s
	}
}

func TestGenerator_WindowEvictsOldestFirst(t *testing.T) {
	var evicted []int
	opts := DefaultOptions()
	opts.Window = 3
	opts.OnEvict = func(s *Section) {
		assert.False(t, s.Evicted, "hook runs before release")
		assert.NotEmpty(t, s.Ribbon.Positions)
		evicted = append(evicted, s.Index)
	}
	g := New(opts, nil)

	var all []*Section
	for c := range 7 {
		all = append(all, g.Advance(c))
		assert.LessOrEqual(t, len(g.Live()), 3)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, evicted)

	live := g.Live()
	require.Len(t, live, 3)
	assert.Equal(t, []int{4, 5, 6}, []int{live[0].Index, live[1].Index, live[2].Index})

	assert.True(t, all[0].Evicted)
	assert.Nil(t, all[0].Blocks)
	assert.Zero(t, all[0].Ribbon.VertexCount())
	assert.Equal(t, 4, g.Stats().Evicted)
}

func TestGenerator_PlanesPerSection(t *testing.T) {
	opts := DefaultOptions()
	opts.SectionLength = 50
	g := New(opts, nil)

	s := g.Advance(4)
	assert.Equal(t, 100, g.PendingCheckpoints())
	assert.Equal(t, 1, g.PendingTriggers())

	first, ok := g.PeekCheckpoint()
	require.True(t, ok)
	trig, ok := g.PeekTrigger()
	require.True(t, ok)
	assert.Equal(t, first, trig)
	assert.Equal(t, s.Trigger, trig)

	// checkpoints come out in path order
	last := -1.0
	for i := range 100 {
		p, ok := g.DequeueCheckpoint()
		require.True(t, ok)
		d := p.Normal.Dot(s.Centerline[i]) - p.Offset
		assert.InDelta(t, 0, d, 1e-9)
		assert.Greater(t, p.Normal.Dot(s.Centerline[i]), last-1)
		last = p.Normal.Dot(s.Centerline[i])
	}
	_, ok = g.DequeueCheckpoint()
	assert.False(t, ok)

	_, ok = g.DequeueTrigger()
	require.True(t, ok)
	_, ok = g.PeekTrigger()
	assert.False(t, ok)
}

func TestGenerator_ClearRewinds(t *testing.T) {
	g := New(DefaultOptions(), nil)
	g.Advance(3)
	g.Advance(3)
	g.Clear()

	assert.Empty(t, g.Live())
	assert.Zero(t, g.Distance())
	assert.Zero(t, g.PendingCheckpoints())
	assert.Zero(t, g.PendingTriggers())

	s := g.Advance(0)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, 0.0, s.Start)
}

func TestGenerator_GeometryInvariants(t *testing.T) {
	g := New(DefaultOptions(), nil)
	g.Reset(31337)
	for c := range 10 {
		s := g.Advance(c * 2)

		for i, n := range s.Ribbon.Normals {
			require.Equal(t, Up, n, "ribbon vertex %d", i)
		}
		for tri := 0; tri < len(s.Ribbon.Indices); tri += 3 {
			p := s.Ribbon.Positions
			a, b, cc := p[s.Ribbon.Indices[tri]], p[s.Ribbon.Indices[tri+1]], p[s.Ribbon.Indices[tri+2]]
			assert.GreaterOrEqual(t, b.Sub(a).Cross(cc.Sub(a)).Y, 0.0, "triangle %d faces down", tri/3)
		}

		for i := 1; i < len(s.Blocks); i++ {
			assert.LessOrEqual(t, s.Blocks[i-1].Start, s.Blocks[i].Start)
		}
		for _, b := range s.Blocks {
			require.NotEmpty(t, b.Samples)
			assert.GreaterOrEqual(t, b.Mesh.TriangleCount(), 4)
			for _, cs := range b.Samples {
				assert.True(t, b.Contains(cs.T))
			}
			_, hi := b.Mesh.Bounds()
			assert.InDelta(t, b.Height, hi.Y, 1e-9)
		}

		for _, p := range s.Powerups {
			assert.True(t, p.Resolved)
			assert.InDelta(t, PowerupHover, p.Sampled.Y, 1e-9)
			assert.True(t, PowerupClear(s.Blocks, p))
			assert.True(t, s.Contains(p.Time))
		}
	}
}

func TestGenerator_FeatureToggles(t *testing.T) {
	opts := DefaultOptions()
	opts.BuildObstacles = false
	opts.BuildPowerups = false
	g := New(opts, nil)
	s := g.Advance(10)
	assert.Empty(t, s.Blocks)
	assert.Empty(t, s.Prefabs)
	assert.Empty(t, s.Powerups)
	assert.NotZero(t, s.Ribbon.VertexCount())
}

func TestGenerator_Stats(t *testing.T) {
	g := New(DefaultOptions(), nil)
	blocks := 0
	for c := range 3 {
		blocks += len(g.Advance(c + 4).Blocks)
	}
	st := g.Stats()
	assert.Equal(t, 3, st.Sections)
	assert.Equal(t, blocks, st.Blocks)
	assert.Greater(t, st.Fills, 0)
	assert.Greater(t, st.FillAttempts, 0)

	n := 0
	for _, k := range st.PrefabsByKind {
		n += k
	}
	assert.Greater(t, n, 0)

	g.Reset(1)
	assert.Equal(t, Stats{}, g.Stats())
}

func TestSection_PointAt(t *testing.T) {
	g := New(DefaultOptions(), nil)
	g.Reset(1234567890)
	s := g.Advance(0)

	p, h, ok := s.PointAt(100.25)
	require.True(t, ok)
	assert.InDelta(t, 0, h, 1e-12)
	assert.InDelta(t, 100.25, p.Z, 1e-9)

	_, _, ok = s.PointAt(-1)
	assert.False(t, ok)
	_, _, ok = s.PointAt(s.End())
	assert.False(t, ok)
}

func TestDrawCounters(t *testing.T) {
	r := NewRand(5)
	c := drawCounters(r, 25)
	total := 0
	for _, v := range c {
		total += v
	}
	assert.Equal(t, 25, total)
	assert.Equal(t, Counters{}, drawCounters(r, 0))
	assert.Equal(t, Counters{}, drawCounters(r, -4))
}
