// Package export writes generated sections as Wavefront OBJ.
package export

import (
	"bufio"
	"fmt"
	"io"

	"ribbon/internal/track"
)

// Writer streams meshes into one OBJ file. Vertex numbering continues
// across groups, so several sections can share a file.
type Writer struct {
	w    *bufio.Writer
	base int // vertices written so far
	err  error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

func (ow *Writer) printf(format string, args ...any) {
	if ow.err != nil {
		return
	}
	_, ow.err = fmt.Fprintf(ow.w, format, args...)
}

// Mesh writes m as a named group.
func (ow *Writer) Mesh(name string, m *track.Mesh) {
	if m.VertexCount() == 0 {
		return
	}
	ow.printf("g %s\n", name)
	for _, p := range m.Positions {
		ow.printf("v %.4f %.4f %.4f\n", p.X, p.Y, p.Z)
	}
	for _, n := range m.Normals {
		ow.printf("vn %.4f %.4f %.4f\n", n.X, n.Y, n.Z)
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := ow.base + int(m.Indices[i]) + 1
		b := ow.base + int(m.Indices[i+1]) + 1
		c := ow.base + int(m.Indices[i+2]) + 1
		ow.printf("f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
	}
	ow.base += m.VertexCount()
}

// Section writes the ribbon, every block and a point per powerup.
func (ow *Writer) Section(s *track.Section) {
	ow.printf("# section %d start %.1f challenge %d curve %s\n", s.Index, s.Start, s.Challenge, s.CurveKind)
	ow.Mesh(fmt.Sprintf("section%d_ribbon", s.Index), &s.Ribbon)
	for i, b := range s.Blocks {
		ow.Mesh(fmt.Sprintf("section%d_block%d", s.Index, i), &b.Mesh)
	}
	if len(s.Powerups) == 0 {
		return
	}
	ow.printf("g section%d_powerups\n", s.Index)
	// one normal per point keeps v and vn numbering in step for later faces
	for _, p := range s.Powerups {
		ow.printf("v %.4f %.4f %.4f\n", p.Sampled.X, p.Sampled.Y, p.Sampled.Z)
		ow.printf("vn 0 1 0\n")
	}
	for i := range s.Powerups {
		ow.printf("p %d\n", ow.base+i+1)
	}
	ow.base += len(s.Powerups)
}

// Flush writes buffered output and returns the first error seen.
func (ow *Writer) Flush() error {
	if ow.err != nil {
		return fmt.Errorf("write obj: %w", ow.err)
	}
	if err := ow.w.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}

// Sections writes every section to w.
func Sections(w io.Writer, sections []*track.Section) error {
	ow := NewWriter(w)
	for _, s := range sections {
		ow.Section(s)
	}
	return ow.Flush()
}
