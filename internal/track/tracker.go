package track

// Tracker follows a moving point along the track. It consumes checkpoint
// planes to measure distance and trigger planes to stream in new sections.
type Tracker struct {
	gen *Generator

	// Challenge maps the index of the section about to be generated to the
	// challenge passed to Advance. Nil uses the index itself.
	Challenge func(index int) int

	checkpoints int
	advances    int
}

func NewTracker(g *Generator) *Tracker {
	return &Tracker{gen: g}
}

// Prime fills the window ahead of the start line.
func (tr *Tracker) Prime() {
	for len(tr.gen.live) < tr.gen.opts.Window-1 {
		tr.advance()
	}
}

func (tr *Tracker) advance() *Section {
	idx := tr.gen.next
	ch := idx
	if tr.Challenge != nil {
		ch = tr.Challenge(idx)
	}
	tr.advances++
	return tr.gen.Advance(ch)
}

// Update moves the tracked point to pos and returns how many sections were
// generated as a result.
func (tr *Tracker) Update(pos Vec3) int {
	for {
		p, ok := tr.gen.PeekCheckpoint()
		if !ok || !p.Crossed(pos) {
			break
		}
		tr.gen.DequeueCheckpoint()
		tr.checkpoints++
	}

	n := 0
	for {
		p, ok := tr.gen.PeekTrigger()
		if !ok || !p.Crossed(pos) {
			break
		}
		tr.gen.DequeueTrigger()
		tr.advance()
		n++
	}
	return n
}

// Distance is the progress measured in crossed checkpoints.
func (tr *Tracker) Distance() float64 {
	return float64(tr.checkpoints) * tr.gen.opts.Res
}

func (tr *Tracker) Advances() int { return tr.advances }

// Reset forgets progress; call after the generator was reset.
func (tr *Tracker) Reset() {
	tr.checkpoints = 0
	tr.advances = 0
}
