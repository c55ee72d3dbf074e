package track

// PrefabKind is a hand-authored obstacle pattern. Kinds are listed in unlock
// order: the prefab challenge counter opens one more kind per point.
type PrefabKind int

const (
	PrefabStrait PrefabKind = iota
	PrefabJig
	PrefabRandom
	PrefabDivide
	PrefabWall
	PrefabNarrow
	PrefabDivide2
	PrefabDivide3
	PrefabForest
	PrefabHall
	PrefabKindCount
)

var prefabNames = [...]string{
	"strait", "jig", "random", "divide", "wall",
	"narrow", "divide2", "divide3", "forest", "hall",
}

func (k PrefabKind) String() string {
	if k < 0 || k >= PrefabKindCount {
		return "unknown"
	}
	return prefabNames[k]
}

// Special reports whether the kind is locked at prefab challenge 0.
func (k PrefabKind) Special() bool { return k >= PrefabBasicKinds }

// Prefab spans along the track.
const (
	prefabLongSpan  = 25.0
	prefabShortSpan = 15.0
	prefabCoreDepth = 15.0
	narrowSpan      = 30.0
	forestSpan      = 30.0
	forestRowStep   = 3.0
	hallWallStep    = 8.0
	hallWallDepth   = 3.0
)

// unlockedPrefabs is the number of kinds available at a prefab challenge.
func unlockedPrefabs(prefabChallenge int) int {
	return min(PrefabBasicKinds+prefabChallenge, int(PrefabKindCount))
}

// prefabSpan is the distance a kind consumes. Hall draws its wall count.
func (b *builder) prefabSpan(kind PrefabKind) (span float64, walls int) {
	switch kind {
	case PrefabDivide, PrefabDivide2, PrefabDivide3:
		return prefabShortSpan, 0
	case PrefabNarrow:
		return narrowSpan, 0
	case PrefabForest:
		return forestSpan, 0
	case PrefabHall:
		walls = b.rng.Range(2, 4)
		return float64(walls) * hallWallStep, walls
	default:
		return prefabLongSpan, 0
	}
}

// appendPrefabs walks [start+margin, start+length-margin) placing prefabs
// separated by randomly filled gaps.
func (b *builder) appendPrefabs(start, length float64, c Counters) {
	randomChallenge := c[CategoryRandom]
	prefabChallenge := c[CategoryPrefab]
	size := c[CategorySize]

	pos := start + PrefabMargin
	end := start + length - PrefabMargin
	heightScale := ChallengeValue(PrefabHeightLow, PrefabHeightHigh, size)
	gap := ChallengeValue(PrefabSpacingLow, PrefabSpacingHigh, prefabChallenge)

	for pos < end {
		kind := PrefabKind(b.rng.Intn(unlockedPrefabs(prefabChallenge)))
		span, walls := b.prefabSpan(kind)
		if pos+span > end {
			b.fill(pos, end, 0, 1, randomChallenge, size)
			break
		}

		switch kind {
		case PrefabStrait:
			b.strait(pos, span, heightScale, randomChallenge, size)
		case PrefabJig:
			b.jig(pos, span, heightScale, randomChallenge, size)
		case PrefabRandom:
			b.fill(pos, pos+span, 0, 1, randomChallenge+1, size)
		case PrefabDivide:
			b.divide(1, 0.3, span, pos, heightScale, randomChallenge, size)
		case PrefabDivide2:
			b.divide(2, 0.2, span, pos, heightScale, randomChallenge, size)
		case PrefabDivide3:
			b.divide(3, 0.1, span, pos, heightScale, randomChallenge, size)
		case PrefabWall:
			b.wall(pos, span, heightScale, randomChallenge, size)
		case PrefabNarrow:
			b.narrow(pos, span, randomChallenge, size)
		case PrefabForest:
			b.forest(pos, span, heightScale, size)
		case PrefabHall:
			b.hall(pos, walls, heightScale, size)
		}
		b.prefabs = append(b.prefabs, kind)
		pos += span

		gapEnd := min(pos+gap, end)
		b.fill(pos, gapEnd, 0, 1, randomChallenge, size)
		pos += gap
	}
}

// strait walls off both edges, leaving a channel down the middle.
func (b *builder) strait(pos, span, heightScale float64, challenge, size int) {
	width := ChallengeValue(0.15, 0.3, size)
	for i := range 2 {
		left, right := 0.0, width
		if i == 1 {
			left, right = 1-width, 1.0
		}
		b.addBlock(&Block{
			Start:    pos,
			Duration: span,
			Left:     left,
			Right:    right,
			Height:   PrefabWallHeight * heightScale,
		})
	}
	b.fill(pos, pos+span, width, 1-width, challenge, size)
}

// jig blocks one side of the lane and forces a sidestep.
func (b *builder) jig(pos, span, heightScale float64, challenge, size int) {
	width := ChallengeValue(0.4, 0.6, size)
	leftSide := b.rng.Intn(2) == 0

	blk := &Block{
		Start:    pos + (span-prefabCoreDepth)/2,
		Duration: prefabCoreDepth,
		Height:   PrefabWallHeight * heightScale,
	}
	if leftSide {
		blk.Left, blk.Right = 0, width
	} else {
		blk.Left, blk.Right = 1-width, 1
	}
	b.addBlock(blk)

	b.fill(pos, blk.Start, 0, 1, challenge, size)
	if leftSide {
		b.fill(blk.Start, blk.End(), blk.Right, 1, challenge, size)
	} else {
		b.fill(blk.Start, blk.End(), 0, blk.Left, challenge, size)
	}
	b.fill(blk.End(), pos+span, 0, 1, challenge, size)
}

// wall splits the lane with a central barrier.
func (b *builder) wall(pos, span, heightScale float64, challenge, size int) {
	width := ChallengeValue(0.1, 0.3, size)
	blk := b.addBlock(&Block{
		Start:    pos + (span-prefabCoreDepth)/2,
		Duration: prefabCoreDepth,
		Left:     (1 - width) / 2,
		Right:    (1 + width) / 2,
		Height:   PrefabWallHeight * heightScale,
	})
	b.fill(pos, pos+span, 0, blk.Left, challenge, size)
	b.fill(pos, pos+span, blk.Right, 1, challenge, size)
}

// narrow pinches the lane for the span, one side harder than the other.
func (b *builder) narrow(pos, span float64, challenge, size int) {
	hard := ChallengeValue(0.7, 0.35, size)
	soft := ChallengeValue(0.9, 0.6, size)
	left, right := hard, soft
	if b.rng.Flip() {
		left, right = soft, hard
	}
	b.widths = append(b.widths,
		WidthChange{Time: pos, Left: left, Right: right},
		WidthChange{Time: pos + span, Left: 1, Right: 1},
	)
	b.fill(pos, pos+span, 0, 1, challenge, size)
}

// forest plants rows of thin pillars on distinct grid columns.
func (b *builder) forest(pos, span, heightScale float64, size int) {
	cols := int(1 / FillQuantumX)
	perRow := min(2+b.rng.Intn(1+size/2), cols/3)
	order := make([]int, cols)
	for i := range order {
		order[i] = i
	}

	rows := int(span / forestRowStep)
	for r := range rows {
		// partial Fisher-Yates: the first perRow entries are the picks
		for i := range perRow {
			j := i + b.rng.Intn(cols-i)
			order[i], order[j] = order[j], order[i]
		}
		rowStart := pos + float64(r)*forestRowStep
		for _, col := range order[:perRow] {
			left := float64(col) * FillQuantumX
			b.addBlock(&Block{
				Start:    rowStart,
				Duration: FillQuantumZ,
				Left:     left,
				Right:    left + FillQuantumX,
				Height:   b.rng.RangeF(PrefabWallHeight, PrefabWallHeight*heightScale+1),
			})
		}
	}
}

// hall is a run of walls with a single opening each, alternating between
// the two halves of the lane.
func (b *builder) hall(pos float64, walls int, heightScale float64, size int) {
	gapWidth := ChallengeValue(0.4, 0.2, size)
	for i := range walls {
		start := pos + float64(i)*hallWallStep + (hallWallStep-hallWallDepth)/2
		var gapLeft float64
		if i%2 == 0 {
			gapLeft = b.rng.RangeF(0, 0.5-gapWidth)
		} else {
			gapLeft = b.rng.RangeF(0.5, 1-gapWidth)
		}
		gapRight := gapLeft + gapWidth
		if gapLeft > FillQuantumX*0.5 {
			b.addBlock(&Block{Start: start, Duration: hallWallDepth, Left: 0, Right: gapLeft, Height: PrefabWallHeight * heightScale})
		}
		if gapRight < 1-FillQuantumX*0.5 {
			b.addBlock(&Block{Start: start, Duration: hallWallDepth, Left: gapRight, Right: 1, Height: PrefabWallHeight * heightScale})
		}
	}
}
