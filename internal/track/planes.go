package track

// Plane is a progress boundary: a point has crossed it once it lies on the
// side Normal points to.
type Plane struct {
	Normal Vec3
	Offset float64
}

// Distance is the signed distance of p in front of the plane.
func (pl Plane) Distance(p Vec3) float64 {
	return p.Dot(pl.Normal) - pl.Offset
}

func (pl Plane) Crossed(p Vec3) bool {
	return pl.Distance(p) > 0
}

// planeQueue is a FIFO of planes. One producer (the generator) pushes, one
// consumer (the progress tracker) pops.
type planeQueue struct {
	items []Plane
	head  int
}

func (q *planeQueue) Len() int { return len(q.items) - q.head }

func (q *planeQueue) push(p Plane) {
	q.items = append(q.items, p)
}

func (q *planeQueue) peek() (Plane, bool) {
	if q.head >= len(q.items) {
		return Plane{}, false
	}
	return q.items[q.head], true
}

func (q *planeQueue) pop() (Plane, bool) {
	p, ok := q.peek()
	if !ok {
		return p, false
	}
	q.head++
	// compact once the consumed prefix dominates
	if q.head > 64 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return p, true
}

func (q *planeQueue) clear() {
	q.items = q.items[:0]
	q.head = 0
}
