package fracture

import (
	"math"

	"ribbon/internal/track"
)

const (
	debrisGravity   = 9.81
	debrisBounce    = 0.3
	debrisGroundFri = 0.6
	debrisAirDrag   = 0.4
	MaxDebris       = 4096
)

// Piece is a live chunk in flight.
type Piece struct {
	Chunk
	Life    float64 // negative = blast has not arrived yet
	MaxLife float64
}

// Started reports whether the blast has reached the piece.
func (p *Piece) Started() bool { return p.Life >= 0 }

// Debris keeps chunks moving until they expire. When full the oldest slots
// are overwritten round-robin.
type Debris struct {
	Max    int
	P      []Piece
	ovrIdx int
}

func NewDebris(maxPieces int) *Debris {
	if maxPieces <= 0 {
		maxPieces = MaxDebris
	}
	return &Debris{Max: maxPieces, P: make([]Piece, 0, maxPieces)}
}

func (d *Debris) Clear() {
	d.P = d.P[:0]
	d.ovrIdx = 0
}

func (d *Debris) Add(c Chunk) {
	p := Piece{Chunk: c, Life: -max(c.Delay, 0), MaxLife: ChunkLife}
	if len(d.P) < d.Max {
		d.P = append(d.P, p)
		return
	}
	if d.ovrIdx >= d.Max {
		d.ovrIdx = 0
	}
	d.P[d.ovrIdx] = p
	d.ovrIdx++
}

// Update advances every started piece by dt: gravity, drag and a damped
// bounce on the floor plane.
func (d *Debris) Update(dt float64) {
	if dt <= 0 {
		return
	}
	drag := math.Exp(-debrisAirDrag * dt)

	for i := 0; i < len(d.P); {
		p := &d.P[i]
		p.Life += dt
		if p.Life >= p.MaxLife {
			d.P[i] = d.P[len(d.P)-1]
			d.P = d.P[:len(d.P)-1]
			continue
		}
		if p.Life < 0 {
			i++
			continue
		}

		p.Velocity.Y -= debrisGravity * dt
		p.Velocity.X *= drag
		p.Velocity.Z *= drag
		p.Offset = p.Offset.Add(p.Velocity.Scale(dt))

		if p.Offset.Y < 0 {
			p.Offset.Y = 0
			if p.Velocity.Y < 0 {
				p.Velocity.Y = -p.Velocity.Y * debrisBounce
			}
			p.Velocity.X *= debrisGroundFri
			p.Velocity.Z *= debrisGroundFri
		}
		i++
	}
}

// Detonate shatters every block in s whose footprint lies within the blast
// radius and returns the chunks. Shattered blocks are removed from the
// section so they are no longer drawn or collided with.
func Detonate(s *track.Section, bl Blast, view View, seed int64) []Chunk {
	var out []Chunk
	kept := s.Blocks[:0]
	for i, b := range s.Blocks {
		if len(b.Samples) == 0 || !inRange(b, bl) {
			kept = append(kept, b)
			continue
		}
		out = append(out, Shatter(b, bl, view, seed+int64(i))...)
	}
	clear(s.Blocks[len(kept):])
	s.Blocks = kept
	return out
}

func inRange(b *track.Block, bl Blast) bool {
	lo, hi := b.Mesh.Bounds()
	center := track.Lerp(lo, hi, 0.5)
	halfDiag := hi.Sub(lo).Len() * 0.5
	return center.Sub(bl.Center).Len()-halfDiag <= bl.Radius
}
