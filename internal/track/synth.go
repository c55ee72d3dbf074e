package track

import "math"

// cursor is the running state of the path between sections.
type cursor struct {
	t      float64
	angle  float64
	center Vec3

	// filtered lane half-widths
	left  float64
	right float64

	// rail emitted by the previous step
	prevLeft  Vec3
	prevRight Vec3
}

func newCursor(res float64) cursor {
	half := BaseWidth * 0.5
	back := Vec3{0, 0, -res}
	return cursor{
		left:      half,
		right:     half,
		prevLeft:  back.Add(Vec3{half, 0, 0}),
		prevRight: back.Add(Vec3{-half, 0, 0}),
	}
}

// synthesize walks the section in steps of res: it integrates heading and
// width, emits the ribbon strip, captures block cross-sections, resolves
// powerup positions and queues one checkpoint plane per step.
func (g *Generator) synthesize(s *Section) {
	res := g.opts.Res
	c := &g.cur
	m := &s.Ribbon

	steps := int(math.Round(s.Length / res))
	m.Positions = make([]Vec3, 0, 2*(steps+1))
	m.Normals = make([]Vec3, 0, 2*(steps+1))
	m.Indices = make([]uint32, 0, 6*steps)
	s.Centerline = make([]Vec3, 0, steps)
	s.Headings = make([]float64, 0, steps)

	// Stitch to the rail the previous section ended on.
	prev := m.addVertex(c.prevLeft, Up)
	m.addVertex(c.prevRight, Up)

	blocks := s.Blocks
	firstBlock := 0
	nextPowerup := 0
	prevT := c.t - res

	for i := range steps {
		cs := s.Curve.Sample(c.t)
		c.angle += cs.DeltaAngle * res
		c.left = approach(c.left, cs.Left, WidthGain)
		c.right = approach(c.right, cs.Right, WidthGain)

		sin, cos := math.Sincos(c.angle)
		forward := Vec3{sin, 0, cos}
		side := Vec3{cos, 0, -sin} // toward the left rail
		leftRail := c.center.Add(side.Scale(c.left))
		rightRail := c.center.Sub(side.Scale(c.right))

		cur := m.addVertex(leftRail, Up)
		m.addVertex(rightRail, Up)
		m.Indices = append(m.Indices,
			prev, prev+1, cur,
			prev+1, cur+1, cur,
		)
		prev = cur

		// Blocks are sorted by start; everything before firstBlock has ended.
		j := firstBlock
		active := -1
		for ; j < len(blocks) && blocks[j].Start <= c.t; j++ {
			if blocks[j].End() < c.t {
				continue
			}
			if active < 0 {
				active = j
			}
			blocks[j].addSample(c.t, leftRail, rightRail)
		}
		if active < 0 {
			active = j
		}
		firstBlock = active

		for nextPowerup < len(s.Powerups) && s.Powerups[nextPowerup].Time <= c.t {
			p := s.Powerups[nextPowerup]
			f := clampF((p.Time-prevT)/res, 0, 1)
			l := Lerp(c.prevLeft, leftRail, f)
			r := Lerp(c.prevRight, rightRail, f)
			p.Sampled = Lerp(l, r, p.Position).Add(Up.Scale(PowerupHover))
			p.Resolved = true
			nextPowerup++
		}

		plane := Plane{Normal: forward, Offset: forward.Dot(c.center)}
		g.checkpoints.push(plane)
		if i == 0 {
			s.Trigger = plane
			g.triggers.push(plane)
		}
		s.Centerline = append(s.Centerline, c.center)
		s.Headings = append(s.Headings, c.angle)

		c.prevLeft, c.prevRight = leftRail, rightRail
		prevT = c.t
		c.center = c.center.Add(forward.Scale(res))
		c.t += res
	}

	for _, b := range blocks {
		b.buildMesh()
	}
}
