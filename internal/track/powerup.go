package track

import (
	"math"
	"sort"
)

// PowerupMode records how a powerup found its slot.
type PowerupMode int

const (
	PowerupFree PowerupMode = iota // anywhere in the lane
	PowerupEdge                    // hugging the side of a short block
)

func (m PowerupMode) String() string {
	if m == PowerupEdge {
		return "edge"
	}
	return "free"
}

// Powerup is a collectible. Time and Position place it in distance x
// lane-fraction space; Sampled is its world position once the section's
// geometry has been built.
type Powerup struct {
	Time     float64
	Position float64
	Mode     PowerupMode

	Sampled  Vec3
	Resolved bool
}

// Footprint is the powerup's extent in distance x lane-fraction space.
func (p *Powerup) footprint() rectF {
	return rectF{
		X0: p.Position - PowerupHalfWidth,
		Z0: p.Time - PowerupHalfDepth,
		X1: p.Position + PowerupHalfWidth,
		Z1: p.Time + PowerupHalfDepth,
	}
}

// clearanceRect is the footprint grown by the powerup's own size.
func (p *Powerup) clearanceRect() rectF {
	return p.footprint().Expand(PowerupHalfWidth, PowerupHalfDepth)
}

// nearestBlock returns the index of the first block starting at or after t.
// blocks must be sorted by Start.
func nearestBlock(blocks []*Block, t float64) int {
	return sort.Search(len(blocks), func(i int) bool { return blocks[i].Start >= t })
}

// checkClearance tests r against the blocks around the nearest one by start
// time rather than every block in the section. Past the window the scan
// keeps going forward while blocks still start inside r, and backward for
// long blocks that started earlier but have not ended yet.
func checkClearance(blocks []*Block, r rectF, window int) bool {
	mid := nearestBlock(blocks, (r.Z0+r.Z1)*0.5)
	lo := max(0, mid-window)
	hi := min(len(blocks), mid+window+1)
	for _, blk := range blocks[lo:hi] {
		if blk.rect().Intersects(r) {
			return false
		}
	}
	for _, blk := range blocks[hi:] {
		if blk.Start >= r.Z1 {
			break
		}
		if blk.rect().Intersects(r) {
			return false
		}
	}
	for _, blk := range blocks[:lo] {
		if blk.End() > r.Z0 && blk.rect().Intersects(r) {
			return false
		}
	}
	return true
}

// PowerupClear reports whether p keeps its clearance from blocks inside the
// search window. blocks must be sorted by Start.
func PowerupClear(blocks []*Block, p *Powerup) bool {
	return checkClearance(blocks, p.clearanceRect(), ClearanceWindow)
}

func inLane(r rectF) bool {
	return r.X0 >= 0 && r.X1 <= 1
}

// powerupCount is how many pickups a section asks for.
func powerupCount(randomChallenge int) int {
	return int(math.Round(ChallengeValue(PowerupMaxCount, PowerupMinCount, randomChallenge)))
}

// placePowerups scatters up to count pickups across [start,end). A pickup
// that finds no clear slot within PowerupRetries draws is dropped. blocks
// must already be sorted by Start.
func (b *builder) placePowerups(start, end float64, count int) []*Powerup {
	var short []*Block
	for _, blk := range b.blocks {
		if blk.Duration <= ShortBlockDuration {
			short = append(short, blk)
		}
	}

	var out []*Powerup
	for i := range count {
		placed := false
		for try := 0; try < PowerupRetries && !placed; try++ {
			var p Powerup
			if b.rng.Flip() && len(short) > 0 {
				p = b.edgeCandidate(short[b.rng.Intn(len(short))])
			} else {
				p = b.freeCandidate(start, end)
			}
			if p.Time < start || p.Time >= end || !inLane(p.clearanceRect()) {
				continue
			}
			if !checkClearance(b.blocks, p.clearanceRect(), ClearanceWindow) {
				continue
			}
			out = append(out, &p)
			placed = true
		}
		if !placed {
			b.log.Debug("powerup dropped", "index", i, "retries", PowerupRetries)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func (b *builder) freeCandidate(start, end float64) Powerup {
	margin := 2 * PowerupHalfWidth
	p := Powerup{
		Time: b.rng.RangeF(start+PrefabMargin, end-PrefabMargin),
		Mode: PowerupFree,
	}
	if b.rng.Flip() {
		p.Position = b.rng.RangeF(margin, 1-margin)
		return p
	}
	band := b.rng.RangeF(margin, PowerupEdgeBand)
	if b.rng.Flip() {
		p.Position = band
	} else {
		p.Position = 1 - band
	}
	return p
}

func (b *builder) edgeCandidate(blk *Block) Powerup {
	offset := 2*PowerupHalfWidth + PowerupEdgeGap
	p := Powerup{
		Time: blk.Start + blk.Duration*0.5,
		Mode: PowerupEdge,
	}
	if b.rng.Flip() {
		p.Position = blk.Left - offset
	} else {
		p.Position = blk.Right + offset
	}
	return p
}
