package track

import (
	"log/slog"
	"math"
)

// builder collects the obstacles and lane changes of one section while the
// prefab walk runs.
type builder struct {
	rng     *Rand
	log     *slog.Logger
	blocks  []*Block
	widths  []WidthChange
	prefabs []PrefabKind

	// counters
	fills    int
	gaveUp   int
	attempts int
}

type fillRegime int

const (
	regimeNormal fillRegime = iota
	regimeSmall
	regimeNarrow
	regimeWide
	regimeCount
)

func (b *builder) addBlock(blk *Block) *Block {
	b.blocks = append(b.blocks, blk)
	return blk
}

// blockSizeRange returns the width/depth draw ranges for a regime.
func blockSizeRange(regime fillRegime, resX, resZ float64, size int) (w0, w1, d0, d1 float64) {
	maxW := ChallengeValue(resX, FillMaxBlockWidth, size)
	maxD := ChallengeValue(resZ, FillMaxBlockDepth, size)
	switch regime {
	case regimeSmall:
		return resX, (resX + maxW) * 0.5, resZ, (resZ + maxD) * 0.5
	case regimeNarrow:
		return resX, resX * 2, resZ, maxD * 1.5
	case regimeWide:
		return resX, maxW * 1.5, resZ, resZ * 2
	default:
		return resX, maxW, resZ, maxD
	}
}

// fill scatters non-overlapping blocks over [start,end] x [left,right] until
// the coverage budget for challenge is spent. Blocks placed by earlier calls
// are not consulted: callers hand out disjoint regions. Returns the number of
// blocks placed.
func (b *builder) fill(start, end, left, right float64, challenge, size int) int {
	areaWidth := right - left
	areaDepth := end - start
	sizeX := int(math.Round(areaWidth / FillQuantumX))
	sizeZ := int(math.Floor(areaDepth / FillQuantumZ)) // never below one quantum deep
	if sizeX < 1 || sizeZ < 1 {
		return 0
	}
	resX := areaWidth / float64(sizeX)
	resZ := areaDepth / float64(sizeZ)

	target := ChallengeValue(FillMinCoverage, FillMaxCoverage, challenge) * areaWidth * areaDepth
	regime := fillRegime(b.rng.Intn(int(regimeCount)))
	w0, w1, d0, d1 := blockSizeRange(regime, resX, resZ, size)
	maxHeight := ChallengeValue(BlockHeightLow, BlockHeightHigh, size)

	first := len(b.blocks)
	b.fills++

	for itr := 0; target > 0; itr++ {
		if itr >= FillMaxIterations {
			b.gaveUp++
			b.log.Warn("fill hit iteration cap",
				"start", start, "end", end,
				"left", left, "right", right,
				"remaining", target,
				"placed", len(b.blocks)-first,
			)
			break
		}
		b.attempts++

		wInt := clamp(int(math.Round(b.rng.RangeF(w0, w1)/resX)), 1, sizeX)
		dInt := clamp(int(math.Round(b.rng.RangeF(d0, d1)/resZ)), 1, sizeZ)
		leftInt := b.rng.Intn(sizeX - wInt + 1)
		startInt := b.rng.Intn(sizeZ - dInt + 1)

		blockLeft := left + float64(leftInt)*resX
		blockStart := start + float64(startInt)*resZ
		cand := &Block{
			Start:    blockStart,
			Duration: float64(dInt) * resZ,
			Left:     blockLeft,
			Right:    blockLeft + float64(wInt)*resX,
		}

		overlap := false
		for _, other := range b.blocks[first:] {
			if other.Overlaps(cand) {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}

		cand.Height = b.rng.RangeF(BlockMinHeight, maxHeight)
		b.addBlock(cand)
		target -= (cand.Right-cand.Left)*cand.Duration + FillBlockPenalty
	}
	return len(b.blocks) - first
}

// divide drops n evenly spaced full-height dividers in the middle of a
// prefab span and fills the open ground in front of and behind each lane
// column they create.
func (b *builder) divide(n int, width, duration, prefabStart, heightScale float64, challenge, size int) {
	start := prefabStart + (duration-DividerDepth)/2
	space := (1 - float64(n)*width) / float64(n+1)

	dividers := make([]*Block, n)
	for i := range n {
		left := space*float64(i+1) + width*float64(i)
		dividers[i] = b.addBlock(&Block{
			Start:    start,
			Duration: DividerDepth,
			Left:     left,
			Right:    left + width,
			Height:   DividerHeight * heightScale,
		})
	}

	// leave some open space around the dividers
	offset := (duration - DividerDepth) * 0.2
	frontEnd := prefabStart + (duration-DividerDepth)/2 - offset
	backStart := prefabStart + (duration+DividerDepth)/2 + offset
	for i := 0; i <= n; i++ {
		left, right := 0.0, 1.0
		if i > 0 {
			left = dividers[i-1].Right
		}
		if i < n {
			right = dividers[i].Left
		}
		b.fill(prefabStart, frontEnd, left, right, challenge, size)
		b.fill(backStart, prefabStart+duration, left, right, challenge, size)
	}
}
