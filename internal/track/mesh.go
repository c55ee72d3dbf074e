package track

// Mesh is an indexed triangle list. Normals are per vertex.
type Mesh struct {
	Positions []Vec3
	Normals   []Vec3
	Indices   []uint32
}

func (m *Mesh) VertexCount() int   { return len(m.Positions) }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

func (m *Mesh) addVertex(p, n Vec3) uint32 {
	i := uint32(len(m.Positions))
	m.Positions = append(m.Positions, p)
	m.Normals = append(m.Normals, n)
	return i
}

// appendQuad adds a flat-shaded quad. Vertices go counter-clockwise as seen
// from the side the face points to.
func (m *Mesh) appendQuad(v0, v1, v2, v3 Vec3) {
	n := v1.Sub(v0).Cross(v2.Sub(v0)).Normalize()
	i := m.addVertex(v0, n)
	m.addVertex(v1, n)
	m.addVertex(v2, n)
	m.addVertex(v3, n)
	m.Indices = append(m.Indices, i, i+1, i+2, i, i+2, i+3)
}

// Flatten packs positions and normals into interleaved float32 triples
// (px,py,pz,nx,ny,nz) for GPU upload.
func (m *Mesh) Flatten(out []float32) []float32 {
	out = out[:0]
	for i, p := range m.Positions {
		n := m.Normals[i]
		out = append(out,
			float32(p.X), float32(p.Y), float32(p.Z),
			float32(n.X), float32(n.Y), float32(n.Z),
		)
	}
	return out
}

// Bounds returns the axis-aligned extent of the mesh.
func (m *Mesh) Bounds() (lo, hi Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		lo = Vec3{min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z)}
		hi = Vec3{max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z)}
	}
	return
}
