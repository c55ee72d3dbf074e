package track

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerupCount(t *testing.T) {
	assert.Equal(t, 8, powerupCount(0))
	assert.Equal(t, 3, powerupCount(10_000))
	for rc := 1; rc < 50; rc++ {
		assert.LessOrEqual(t, powerupCount(rc), powerupCount(rc-1))
	}
}

func TestCheckClearance(t *testing.T) {
	blocks := []*Block{
		{Start: 10, Duration: 2, Left: 0.4, Right: 0.6},
		{Start: 20, Duration: 2, Left: 0.0, Right: 0.2},
	}
	hit := &Powerup{Time: 11, Position: 0.5}
	assert.False(t, PowerupClear(blocks, hit))

	// the footprint misses but the clearance margin does not
	near := &Powerup{Time: 11, Position: 0.6 + 1.5*PowerupHalfWidth}
	assert.False(t, PowerupClear(blocks, near))

	beside := &Powerup{Time: 11, Position: 0.6 + 4*PowerupHalfWidth + 0.001}
	assert.True(t, PowerupClear(blocks, beside))

	ahead := &Powerup{Time: 15, Position: 0.5}
	assert.True(t, PowerupClear(blocks, ahead))
	assert.True(t, PowerupClear(nil, ahead))
}

func TestCheckClearance_LongBlockBeforeWindow(t *testing.T) {
	// one long wall that starts well before a crowd of short blocks
	blocks := []*Block{{Start: 0, Duration: 100, Left: 0, Right: 0.5}}
	for i := range 20 {
		blocks = append(blocks, &Block{Start: 50 + float64(i), Duration: 0.5, Left: 0.9, Right: 1})
	}
	wall := (&Powerup{Time: 69, Position: 0.3}).clearanceRect()
	assert.False(t, checkClearance(blocks, wall, 2), "wall started outside the window")

	open := (&Powerup{Time: 69, Position: 0.7}).clearanceRect()
	assert.True(t, checkClearance(blocks, open, 2))
}

func TestCheckClearance_ScansPastWindowAhead(t *testing.T) {
	// many blocks start at the same distance; the one that blocks is last
	var blocks []*Block
	for range 12 {
		blocks = append(blocks, &Block{Start: 10, Duration: 1, Left: 0.9, Right: 1})
	}
	blocks = append(blocks, &Block{Start: 10, Duration: 1, Left: 0.4, Right: 0.6})
	r := (&Powerup{Time: 9, Position: 0.5}).clearanceRect()
	assert.False(t, checkClearance(blocks, r, 2))
}

func TestPlacePowerups_ClearAndOrdered(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		b := newBuilder(seed)
		var c Counters
		c[CategoryPrefab] = int(seed % 7)
		c[CategorySize] = int(seed % 3)
		b.appendPrefabs(0, 500, c)
		sort.SliceStable(b.blocks, func(i, j int) bool { return b.blocks[i].Start < b.blocks[j].Start })

		ps := b.placePowerups(0, 500, 8)
		assert.LessOrEqual(t, len(ps), 8)
		for i, p := range ps {
			assert.True(t, PowerupClear(b.blocks, p), "seed %d powerup %d", seed, i)
			assert.True(t, inLane(p.clearanceRect()))
			assert.GreaterOrEqual(t, p.Time, 0.0)
			assert.Less(t, p.Time, 500.0)
			if i > 0 {
				assert.LessOrEqual(t, ps[i-1].Time, p.Time)
			}
		}
	}
}

func TestPlacePowerups_EdgeModeHugsBlock(t *testing.T) {
	b := newBuilder(4)
	b.blocks = []*Block{{Start: 100, Duration: 2, Left: 0.45, Right: 0.55}}
	for range 20 {
		p := b.edgeCandidate(b.blocks[0])
		assert.Equal(t, PowerupEdge, p.Mode)
		assert.Equal(t, 101.0, p.Time)
		assert.True(t, PowerupClear(b.blocks, &p))
	}
}

func TestPlacePowerups_BlockedLaneDropsAll(t *testing.T) {
	b := newBuilder(9)
	b.blocks = []*Block{{Start: 0, Duration: 500, Left: 0, Right: 1}}
	ps := b.placePowerups(0, 500, 5)
	require.Empty(t, ps)
}
