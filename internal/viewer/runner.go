package viewer

import (
	"ribbon/internal/fracture"
	"ribbon/internal/track"
)

const (
	BlastAhead  = 25.0 // distance ahead of the runner a blast goes off
	BlastRadius = 6.0
	RunnerEye   = 1.0 // runner height above the ribbon
)

// Runner moves along the centerline at a fixed speed and feeds its
// position to the tracker so sections stream in ahead of it.
type Runner struct {
	gen     *track.Generator
	tracker *track.Tracker

	Speed    float64
	Distance float64
	Pos      track.Vec3
	Heading  float64
}

func NewRunner(gen *track.Generator, tracker *track.Tracker, speed float64) *Runner {
	return &Runner{gen: gen, tracker: tracker, Speed: speed}
}

// Step advances dt seconds. It reports how many sections were generated.
// The runner waits at the end of the generated track instead of leaving it.
func (r *Runner) Step(dt float64) int {
	if dt <= 0 {
		return 0
	}
	next := r.Distance + r.Speed*dt
	pos, heading, ok := r.gen.PointAt(next)
	if !ok {
		return 0
	}
	r.Distance = next
	r.Pos = pos.Add(track.Up.Scale(RunnerEye))
	r.Heading = heading
	return r.tracker.Update(pos)
}

// Restart rewinds to the start of a freshly seeded track.
func (r *Runner) Restart(seed int64) {
	r.gen.Reset(seed)
	r.tracker.Reset()
	r.tracker.Prime()
	r.Distance = 0
	r.Pos, r.Heading, _ = r.gen.PointAt(0)
	r.Pos = r.Pos.Add(track.Up.Scale(RunnerEye))
}

// Blast blows up the blocks around a point just ahead of the runner and
// hands the chunks to debris. It returns the number of chunks made.
func (r *Runner) Blast(debris *fracture.Debris, view fracture.View, seed int64) int {
	center, _, ok := r.gen.PointAt(r.Distance + BlastAhead)
	if !ok {
		return 0
	}
	bl := fracture.Blast{Center: center, Radius: BlastRadius}
	n := 0
	for _, s := range r.gen.Live() {
		for _, c := range fracture.Detonate(s, bl, view, seed+int64(s.Index)<<16) {
			debris.Add(c)
			n++
		}
	}
	return n
}
