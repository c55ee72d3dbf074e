package viewer

import (
	"ribbon/internal/fracture"
	"ribbon/internal/track"
)

const PowerupSize = 0.6 // half extent of the powerup cube

// cubeFaces lists each face as its outward normal and four corners wound
// counter-clockwise seen from outside, on a unit cube centred at the origin.
var cubeFaces = [6]struct {
	n track.Vec3
	v [4]track.Vec3
}{
	{track.Vec3{X: 1}, [4]track.Vec3{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	{track.Vec3{X: -1}, [4]track.Vec3{{-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, -1}}},
	{track.Vec3{Y: 1}, [4]track.Vec3{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}}},
	{track.Vec3{Y: -1}, [4]track.Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{track.Vec3{Z: 1}, [4]track.Vec3{{1, -1, 1}, {1, 1, 1}, {-1, 1, 1}, {-1, -1, 1}}},
	{track.Vec3{Z: -1}, [4]track.Vec3{{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}},
}

// cubeMesh builds a flat-shaded cube of the given half extent, drawn at
// each powerup's position through the offset uniform.
func cubeMesh(half float64) track.Mesh {
	var m track.Mesh
	for _, f := range cubeFaces {
		base := uint32(len(m.Positions))
		for _, v := range f.v {
			m.Positions = append(m.Positions, v.Scale(half))
			m.Normals = append(m.Normals, f.n)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// appendDebris expands every started piece into world-space triangles,
// interleaved like Mesh.Flatten, ready for a single streamed draw.
func appendDebris(buf []float32, pieces []fracture.Piece) []float32 {
	buf = buf[:0]
	for i := range pieces {
		p := &pieces[i]
		if !p.Started() {
			continue
		}
		m := &p.Mesh
		for _, idx := range m.Indices {
			v := m.Positions[idx].Add(p.Offset)
			n := m.Normals[idx]
			buf = append(buf,
				float32(v.X), float32(v.Y), float32(v.Z),
				float32(n.X), float32(n.Y), float32(n.Z),
			)
		}
	}
	return buf
}
