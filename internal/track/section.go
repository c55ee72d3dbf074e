package track

import "math"

// Category is one axis of difficulty a challenge point can be spent on.
type Category int

const (
	CategoryPrefab Category = iota
	CategoryRandom
	CategorySize
	CategoryCurve
	CategoryWidth
	CategoryCount
)

var categoryNames = [...]string{"prefab", "random", "size", "curve", "width"}

func (c Category) String() string {
	if c < 0 || c >= CategoryCount {
		return "unknown"
	}
	return categoryNames[c]
}

// Counters splits a scalar challenge across categories.
type Counters [CategoryCount]int

// drawCounters spends challenge points on uniformly drawn categories.
func drawCounters(r *Rand, challenge int) Counters {
	var c Counters
	for range max(challenge, 0) {
		c[r.Intn(int(CategoryCount))]++
	}
	return c
}

// Section is one streamed span of track.
type Section struct {
	Index     int
	Start     float64
	Length    float64
	Challenge int
	Counters  Counters

	CurveKind CurveKind
	Curve     Curve
	Width     float64 // lane width the curve was built for
	Prefabs   []PrefabKind

	Blocks   []*Block
	Powerups []*Powerup
	Ribbon   Mesh

	// Centerline holds one point and heading per sampling step.
	Centerline []Vec3
	Headings   []float64

	Trigger Plane
	Evicted bool
}

// End is the exclusive end distance of the section.
func (s *Section) End() float64 { return s.Start + s.Length }

// Contains reports whether distance t belongs to the section.
func (s *Section) Contains(t float64) bool {
	return t >= s.Start && t < s.End()
}

// PointAt interpolates the centerline position and heading at distance t.
func (s *Section) PointAt(t float64) (Vec3, float64, bool) {
	n := len(s.Centerline)
	if n == 0 || !s.Contains(t) {
		return Vec3{}, 0, false
	}
	step := s.Length / float64(n)
	f := (t - s.Start) / step
	i := int(math.Floor(f))
	if i >= n-1 {
		return s.Centerline[n-1], s.Headings[n-1], true
	}
	frac := f - float64(i)
	h := s.Headings[i] + (s.Headings[i+1]-s.Headings[i])*frac
	return Lerp(s.Centerline[i], s.Centerline[i+1], frac), h, true
}

// SpecialPrefabs counts prefabs that are locked at prefab challenge 0.
func (s *Section) SpecialPrefabs() int {
	n := 0
	for _, k := range s.Prefabs {
		if k.Special() {
			n++
		}
	}
	return n
}

// release drops all geometry; the section is no longer live.
func (s *Section) release() {
	for _, b := range s.Blocks {
		b.release()
	}
	s.Blocks = nil
	s.Powerups = nil
	s.Ribbon = Mesh{}
	s.Centerline = nil
	s.Headings = nil
	s.Evicted = true
}
