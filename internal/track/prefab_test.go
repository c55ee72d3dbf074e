package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnlockedPrefabs(t *testing.T) {
	assert.Equal(t, 3, unlockedPrefabs(0))
	assert.Equal(t, 4, unlockedPrefabs(1))
	assert.Equal(t, int(PrefabKindCount), unlockedPrefabs(50))
}

func TestPrefabKind_Special(t *testing.T) {
	assert.False(t, PrefabStrait.Special())
	assert.False(t, PrefabJig.Special())
	assert.False(t, PrefabRandom.Special())
	assert.True(t, PrefabDivide.Special())
	assert.True(t, PrefabHall.Special())
	assert.Equal(t, "divide3", PrefabDivide3.String())
	assert.Equal(t, "unknown", PrefabKind(99).String())
}

func TestAppendPrefabs_StayInsideSection(t *testing.T) {
	const start, length = 1000.0, 500.0
	for seed := int64(1); seed <= 40; seed++ {
		b := newBuilder(seed)
		var c Counters
		c[CategoryPrefab] = int(seed % 12)
		c[CategoryRandom] = int(seed % 4)
		c[CategorySize] = int(seed % 6)
		b.appendPrefabs(start, length, c)

		require.NotEmpty(t, b.prefabs)
		for _, k := range b.prefabs {
			assert.Less(t, int(k), unlockedPrefabs(c[CategoryPrefab]))
		}
		for _, blk := range b.blocks {
			assert.GreaterOrEqual(t, blk.Start, start+PrefabMargin-1e-9)
			assert.LessOrEqual(t, blk.End(), start+length-PrefabMargin+1e-9)
			assert.GreaterOrEqual(t, blk.Left, -1e-9)
			assert.LessOrEqual(t, blk.Right, 1+1e-9)
			assert.Greater(t, blk.Right, blk.Left)
			assert.Greater(t, blk.Height, 0.0)
		}
		requireDisjoint(t, b.blocks)

		// every pinch is released again
		require.Zero(t, len(b.widths)%2)
		for i := 1; i < len(b.widths); i += 2 {
			assert.Equal(t, 1.0, b.widths[i].Left)
			assert.Equal(t, 1.0, b.widths[i].Right)
			assert.Greater(t, b.widths[i].Time, b.widths[i-1].Time)
		}
	}
}

func TestAppendPrefabs_NoSpecialAtZero(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		b := newBuilder(seed)
		b.appendPrefabs(0, 500, Counters{})
		for _, k := range b.prefabs {
			assert.False(t, k.Special(), "seed %d placed %v", seed, k)
		}
	}
}

func TestStrait_LeavesChannel(t *testing.T) {
	b := newBuilder(3)
	b.strait(10, prefabLongSpan, 1, 0, 0)
	require.GreaterOrEqual(t, len(b.blocks), 2)
	width := ChallengeValue(0.15, 0.3, 0)
	assert.Equal(t, 0.0, b.blocks[0].Left)
	assert.InDelta(t, width, b.blocks[0].Right, 1e-12)
	assert.InDelta(t, 1-width, b.blocks[1].Left, 1e-12)
	assert.Equal(t, 1.0, b.blocks[1].Right)
	for _, blk := range b.blocks[2:] {
		assert.GreaterOrEqual(t, blk.Left, width-1e-9)
		assert.LessOrEqual(t, blk.Right, 1-width+1e-9)
	}
}

func TestHall_OneOpeningPerWall(t *testing.T) {
	b := newBuilder(8)
	b.hall(0, 3, 1, 0)
	gap := ChallengeValue(0.4, 0.2, 0)

	byStart := map[float64][]*Block{}
	for _, blk := range b.blocks {
		byStart[blk.Start] = append(byStart[blk.Start], blk)
	}
	require.Len(t, byStart, 3)
	for _, wall := range byStart {
		covered := 0.0
		for _, blk := range wall {
			covered += blk.Right - blk.Left
		}
		assert.InDelta(t, 1-gap, covered, FillQuantumX)
	}
}

func TestForest_DistinctColumnsPerRow(t *testing.T) {
	b := newBuilder(12)
	b.forest(0, forestSpan, 1, 4)
	rows := map[float64]map[float64]bool{}
	for _, blk := range b.blocks {
		if rows[blk.Start] == nil {
			rows[blk.Start] = map[float64]bool{}
		}
		assert.False(t, rows[blk.Start][blk.Left], "column reused in row %v", blk.Start)
		rows[blk.Start][blk.Left] = true
	}
	assert.Len(t, rows, int(forestSpan/forestRowStep))
}
