// Package fracture breaks obstacle blocks into box-shaped debris.
package fracture

import (
	"math"

	"ribbon/internal/track"
)

const (
	ChunkSize = 1.0

	// seconds for the wavefront to travel one radius
	blastTimeFactor = 1.0 / 3.0
	blastLead       = 0.01

	BlastForce        = 12.0
	BlastRadiusFactor = 2.0
	ChunkJitter       = 0.25
	ChunkLife         = 4.0
)

// Blast is an explosion that reaches outward at a fixed speed.
type Blast struct {
	Center track.Vec3
	Radius float64
}

// Delay is how long the blast takes to reach p. Negative means already hit.
func (bl Blast) Delay(p track.Vec3) float64 {
	if bl.Radius <= 0 {
		return -1
	}
	return blastTimeFactor*p.Sub(bl.Center).Len()/bl.Radius - blastLead
}

// impulse is the outward push at p, fading to zero at twice the radius.
func (bl Blast) impulse(p track.Vec3) track.Vec3 {
	d := p.Sub(bl.Center)
	reach := bl.Radius * BlastRadiusFactor
	dist := d.Len()
	if reach <= 0 || dist >= reach {
		return track.Vec3{}
	}
	dir := d.Normalize()
	if dist == 0 {
		dir = track.Up
	}
	return dir.Scale(BlastForce * (1 - dist/reach))
}

// View is where the block is seen from. Only faces that face the eye get
// broken into chunks; the rest of the block simply disappears.
type View struct {
	Eye   track.Vec3
	Right track.Vec3
}

// Chunk is one piece of a shattered block. Mesh is a closed 36-vertex box
// in local space; Offset places it in the world.
type Chunk struct {
	Mesh     track.Mesh
	Offset   track.Vec3
	Velocity track.Vec3
	Delay    float64
}

// Center is the chunk's world-space centroid.
func (c *Chunk) Center() track.Vec3 {
	var sum track.Vec3
	for _, p := range c.Mesh.Positions {
		sum = sum.Add(p)
	}
	if n := len(c.Mesh.Positions); n > 0 {
		sum = sum.Scale(1 / float64(n))
	}
	return sum.Add(c.Offset)
}

// boxFaces lists the corners of each face, two triangles per face. Corners
// 0-3 are the floor (0,1 front; 2,3 back), 4-7 the same raised.
var boxFaces = [6][6]int{
	{0, 1, 4, 4, 1, 5}, // front
	{1, 3, 5, 5, 3, 7},
	{3, 2, 7, 7, 2, 6}, // back
	{2, 0, 6, 6, 0, 4},
	{4, 5, 6, 6, 5, 7}, // top
	{2, 3, 0, 0, 3, 1},
}

// makeBox builds a flat-shaded box from its eight corners.
func makeBox(v [8]track.Vec3) track.Mesh {
	m := track.Mesh{
		Positions: make([]track.Vec3, 0, 36),
		Normals:   make([]track.Vec3, 0, 36),
		Indices:   make([]uint32, 0, 36),
	}
	for _, f := range boxFaces {
		a, b, c := v[f[0]], v[f[1]], v[f[2]]
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()
		for _, k := range f {
			m.Indices = append(m.Indices, uint32(len(m.Positions)))
			m.Positions = append(m.Positions, v[k])
			m.Normals = append(m.Normals, n)
		}
	}
	return m
}

// corners spans the floor quad between fractions t0 and t1 of two
// consecutive cross-sections and raises it by dy.
func corners(s0, s1 track.CrossSection, t0, t1 float64, dy track.Vec3) [8]track.Vec3 {
	var v [8]track.Vec3
	v[0] = track.Lerp(s0.Left, s0.Right, t0)
	v[1] = track.Lerp(s0.Left, s0.Right, t1)
	v[2] = track.Lerp(s1.Left, s1.Right, t0)
	v[3] = track.Lerp(s1.Left, s1.Right, t1)
	for i := range 4 {
		v[i+4] = v[i].Add(dy)
	}
	return v
}

// Shatter breaks b into chunks: a full grid of columns across the front
// slice, one strip down the side facing the viewer and a top layer when the
// viewer is above the block. seed drives the impulse jitter.
func Shatter(b *track.Block, bl Blast, view View, seed int64) []Chunk {
	if len(b.Samples) < 2 || b.Height <= 0 {
		return nil
	}
	s0, s1 := b.Samples[0], b.Samples[1]
	width := s0.Right.Sub(s0.Left).Len()
	if width == 0 {
		return nil
	}
	wide := int(math.Ceil(width / ChunkSize))
	high := int(math.Ceil(b.Height / ChunkSize))
	dy := track.Vec3{Y: b.Height / float64(high)}

	r := track.NewRand(seed)
	var out []Chunk
	emit := func(v [8]track.Vec3, offset track.Vec3) {
		c := Chunk{Mesh: makeBox(v), Offset: offset}
		center := c.Center()
		c.Delay = bl.Delay(center)
		jitter := track.Vec3{
			X: r.RangeF(-ChunkJitter, ChunkJitter),
			Y: r.RangeF(0, ChunkJitter),
			Z: r.RangeF(-ChunkJitter, ChunkJitter),
		}
		c.Velocity = bl.impulse(center).Add(jitter.Scale(BlastForce))
		out = append(out, c)
	}

	// Front slice, full grid.
	for i := range wide {
		t0 := float64(i) / float64(wide)
		t1 := float64(i+1) / float64(wide)
		v := corners(s0, s1, t0, t1, dy)
		for j := range high {
			emit(v, dy.Scale(float64(j)))
		}
	}

	// One side strip, whichever the viewer can see.
	i0, i1 := 0, wide
	side := false
	var t0, t1 float64
	switch {
	case s0.Right.Sub(view.Eye).Dot(view.Right) < 0:
		side = true
		t0, t1 = float64(wide-1)/float64(wide), 1
		i1--
	case s0.Left.Sub(view.Eye).Dot(view.Right) > 0:
		side = true
		t0, t1 = 0, 1/float64(wide)
		i0++
	}
	if side {
		for i := 1; i < len(b.Samples)-1; i++ {
			v := corners(b.Samples[i], b.Samples[i+1], t0, t1, dy)
			for j := range high {
				emit(v, dy.Scale(float64(j)))
			}
		}
	}

	// Top layer when looking down on the block.
	if high > 1 && len(b.Samples) > 2 && b.Height < view.Eye.Y {
		top := track.Vec3{Y: b.Height - dy.Y}
		for i := 1; i < len(b.Samples)-1; i++ {
			for j := i0; j < i1; j++ {
				v := corners(b.Samples[i], b.Samples[i+1], float64(j)/float64(wide), float64(j+1)/float64(wide), dy)
				emit(v, top)
			}
		}
	}
	return out
}
