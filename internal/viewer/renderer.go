//go:build !android

package viewer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"ribbon/internal/fracture"
	"ribbon/internal/track"
)

// RGB colour, 0..1 per channel.
type RGB [3]float32

var (
	SkyColor     = RGB{0.62, 0.74, 0.86}
	RibbonColor  = RGB{0.42, 0.44, 0.48}
	BlockColor   = RGB{0.86, 0.45, 0.22}
	DebrisColor  = RGB{0.72, 0.38, 0.20}
	PowerupColor = RGB{0.30, 0.85, 0.45}
	EdgeColor    = RGB{0.95, 0.85, 0.25} // powerups tucked against a block
)

var lightDir = track.Vec3{X: 0.3, Y: -1, Z: 0.5}.Normalize()

const stride = 6 * 4 // position + normal, float32

// gpuMesh is one uploaded indexed mesh.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

func (g *gpuMesh) draw() {
	if g.count == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, nil)
}

func (g *gpuMesh) free() {
	if g.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
	gl.DeleteVertexArrays(1, &g.vao)
	*g = gpuMesh{}
}

func bindLayout() {
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
}

// sectionMeshes holds the GPU copies of one section's geometry. Blocks are
// keyed by pointer so shattered blocks can be dropped individually.
type sectionMeshes struct {
	ribbon gpuMesh
	blocks map[*track.Block]*gpuMesh
}

type Renderer struct {
	prog uint32

	uProj     int32
	uView     int32
	uOffset   int32
	uColor    int32
	uLightDir int32
	uFogColor int32
	uFogFar   int32

	sections map[int]*sectionMeshes
	powerup  gpuMesh

	// Streaming buffer for debris, rebuilt every frame.
	debrisVAO uint32
	debrisVBO uint32
	debrisBuf []float32

	scratch []float32
}

func NewRenderer() (*Renderer, error) {
	prog, err := linkProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, fmt.Errorf("mesh program: %w", err)
	}

	r := &Renderer{
		prog:     prog,
		sections: make(map[int]*sectionMeshes),
	}

	gl.UseProgram(prog)
	r.uProj = gl.GetUniformLocation(prog, gl.Str("uProj\x00"))
	r.uView = gl.GetUniformLocation(prog, gl.Str("uView\x00"))
	r.uOffset = gl.GetUniformLocation(prog, gl.Str("uOffset\x00"))
	r.uColor = gl.GetUniformLocation(prog, gl.Str("uColor\x00"))
	r.uLightDir = gl.GetUniformLocation(prog, gl.Str("uLightDir\x00"))
	r.uFogColor = gl.GetUniformLocation(prog, gl.Str("uFogColor\x00"))
	r.uFogFar = gl.GetUniformLocation(prog, gl.Str("uFogFar\x00"))
	gl.Uniform3f(r.uLightDir, float32(lightDir.X), float32(lightDir.Y), float32(lightDir.Z))
	gl.Uniform3f(r.uFogColor, SkyColor[0], SkyColor[1], SkyColor[2])
	gl.Uniform1f(r.uFogFar, float32(CameraFar))

	cube := cubeMesh(PowerupSize)
	r.powerup = r.upload(&cube)

	gl.GenVertexArrays(1, &r.debrisVAO)
	gl.GenBuffers(1, &r.debrisVBO)
	gl.BindVertexArray(r.debrisVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.debrisVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STREAM_DRAW)
	bindLayout()
	gl.BindVertexArray(0)

	return r, nil
}

func (r *Renderer) upload(m *track.Mesh) gpuMesh {
	var g gpuMesh
	if len(m.Indices) == 0 {
		return g
	}
	r.scratch = m.Flatten(r.scratch)

	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.GenBuffers(1, &g.ebo)
	gl.BindVertexArray(g.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.scratch)*4, gl.Ptr(r.scratch), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	bindLayout()

	gl.BindVertexArray(0)
	g.count = int32(len(m.Indices))
	return g
}

// Sync uploads sections that have no GPU copy yet and drops block meshes
// whose block is gone from its section.
func (r *Renderer) Sync(live []*track.Section) {
	for _, s := range live {
		sm, ok := r.sections[s.Index]
		if !ok {
			sm = &sectionMeshes{
				ribbon: r.upload(&s.Ribbon),
				blocks: make(map[*track.Block]*gpuMesh, len(s.Blocks)),
			}
			for _, b := range s.Blocks {
				g := r.upload(&b.Mesh)
				sm.blocks[b] = &g
			}
			r.sections[s.Index] = sm
			continue
		}
		if len(sm.blocks) == len(s.Blocks) {
			continue
		}
		keep := make(map[*track.Block]bool, len(s.Blocks))
		for _, b := range s.Blocks {
			keep[b] = true
		}
		for b, g := range sm.blocks {
			if !keep[b] {
				g.free()
				delete(sm.blocks, b)
			}
		}
	}
}

// Release frees a section's buffers. It is the generator's eviction hook.
func (r *Renderer) Release(s *track.Section) {
	sm, ok := r.sections[s.Index]
	if !ok {
		return
	}
	sm.ribbon.free()
	for _, g := range sm.blocks {
		g.free()
	}
	delete(r.sections, s.Index)
}

func (r *Renderer) setColor(c RGB) { gl.Uniform3f(r.uColor, c[0], c[1], c[2]) }

func (r *Renderer) setOffset(v track.Vec3) {
	gl.Uniform3f(r.uOffset, float32(v.X), float32(v.Y), float32(v.Z))
}

// Draw renders the live window and any flying debris.
func (r *Renderer) Draw(live []*track.Section, debris *fracture.Debris, cam *Camera, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.prog)
	proj := cam.Projection(fbW, fbH)
	view := cam.View()
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	r.setOffset(track.Vec3{})

	for _, s := range live {
		sm, ok := r.sections[s.Index]
		if !ok {
			continue
		}
		r.setColor(RibbonColor)
		sm.ribbon.draw()
		r.setColor(BlockColor)
		for _, g := range sm.blocks {
			g.draw()
		}
	}

	for _, s := range live {
		for _, p := range s.Powerups {
			if p.Mode == track.PowerupEdge {
				r.setColor(EdgeColor)
			} else {
				r.setColor(PowerupColor)
			}
			r.setOffset(p.Sampled)
			r.powerup.draw()
		}
	}
	r.setOffset(track.Vec3{})

	r.debrisBuf = appendDebris(r.debrisBuf, debris.P)
	if n := len(r.debrisBuf); n > 0 {
		r.setColor(DebrisColor)
		gl.BindVertexArray(r.debrisVAO)
		gl.BindBuffer(gl.ARRAY_BUFFER, r.debrisVBO)
		gl.BufferData(gl.ARRAY_BUFFER, n*4, gl.Ptr(r.debrisBuf), gl.STREAM_DRAW)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(n/6))
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) Destroy() {
	for _, sm := range r.sections {
		sm.ribbon.free()
		for _, g := range sm.blocks {
			g.free()
		}
	}
	clear(r.sections)
	r.powerup.free()
	gl.DeleteBuffers(1, &r.debrisVBO)
	gl.DeleteVertexArrays(1, &r.debrisVAO)
	gl.DeleteProgram(r.prog)
}

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }
