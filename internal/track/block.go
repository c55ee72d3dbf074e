package track

// CrossSection is a block's floor edge captured at one sampling step.
type CrossSection struct {
	T     float64
	Left  Vec3
	Right Vec3
}

// Block is an obstacle volume in distance x lane-fraction space.
// Left and Right are fractions of the lane width, 0 at the left rail.
type Block struct {
	Start    float64
	Duration float64
	Left     float64
	Right    float64
	Height   float64

	// Filled during geometry synthesis.
	Samples []CrossSection
	Mesh    Mesh
}

func (b *Block) End() float64 { return b.Start + b.Duration }

func (b *Block) rect() rectF {
	return rectF{X0: b.Left, Z0: b.Start, X1: b.Right, Z1: b.End()}
}

// Overlaps reports whether two blocks share area in both the distance and
// the cross-section interval.
func (b *Block) Overlaps(o *Block) bool {
	return b.rect().Intersects(o.rect())
}

// Contains reports whether distance t falls inside the block, ends included.
func (b *Block) Contains(t float64) bool {
	return t >= b.Start && t <= b.End()
}

func (b *Block) addSample(t float64, leftRail, rightRail Vec3) {
	b.Samples = append(b.Samples, CrossSection{
		T:     t,
		Left:  Lerp(leftRail, rightRail, b.Left),
		Right: Lerp(leftRail, rightRail, b.Right),
	})
}

// buildMesh turns the sampled cross-sections into a closed box: front cap,
// left/top/right walls between consecutive samples, back cap.
func (b *Block) buildMesh() {
	b.Mesh = Mesh{}
	if len(b.Samples) == 0 {
		return
	}
	up := Up.Scale(b.Height)
	m := &b.Mesh

	first := b.Samples[0]
	m.appendQuad(first.Right, first.Right.Add(up), first.Left.Add(up), first.Left)

	for i := 1; i < len(b.Samples); i++ {
		prev := b.Samples[i-1]
		cur := b.Samples[i]
		m.appendQuad(prev.Left, prev.Left.Add(up), cur.Left.Add(up), cur.Left)
		m.appendQuad(prev.Left.Add(up), prev.Right.Add(up), cur.Right.Add(up), cur.Left.Add(up))
		m.appendQuad(cur.Right, cur.Right.Add(up), prev.Right.Add(up), prev.Right)
	}

	last := b.Samples[len(b.Samples)-1]
	m.appendQuad(last.Left, last.Left.Add(up), last.Right.Add(up), last.Right)
}

// release drops geometry once the owning section leaves the window.
func (b *Block) release() {
	b.Samples = nil
	b.Mesh = Mesh{}
}
