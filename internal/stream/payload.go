package stream

import "ribbon/internal/track"

type clientMessage struct {
	Op        string `json:"op"`
	Challenge *int   `json:"challenge,omitempty"`
	Seed      *int64 `json:"seed,omitempty"`
}

type helloMessage struct {
	Type   string  `json:"type"`
	Seed   int64   `json:"seed"`
	Res    float64 `json:"res"`
	Length float64 `json:"section_length"`
	Window int     `json:"window"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

type evictMessage struct {
	Type    string `json:"type"`
	Section int    `json:"section"`
}

type resetMessage struct {
	Type string `json:"type"`
	Seed int64  `json:"seed"`
}

// MeshPayload is a mesh flattened for transport: Vertices holds
// interleaved position and normal triples.
type MeshPayload struct {
	Vertices []float32 `json:"vertices"`
	Indices  []uint32  `json:"indices"`
}

type PlanePayload struct {
	Normal [3]float64 `json:"normal"`
	Offset float64    `json:"offset"`
}

type BlockPayload struct {
	Start    float64     `json:"start"`
	Duration float64     `json:"duration"`
	Left     float64     `json:"left"`
	Right    float64     `json:"right"`
	Height   float64     `json:"height"`
	Mesh     MeshPayload `json:"mesh"`
}

type PowerupPayload struct {
	Time     float64    `json:"time"`
	Position float64    `json:"position"`
	Mode     string     `json:"mode"`
	At       [3]float64 `json:"at"`
}

// SectionPayload is everything a remote renderer needs for one section.
type SectionPayload struct {
	Type      string           `json:"type"`
	Index     int              `json:"index"`
	Start     float64          `json:"start"`
	Length    float64          `json:"length"`
	Challenge int              `json:"challenge"`
	Curve     string           `json:"curve"`
	Prefabs   []string         `json:"prefabs"`
	Ribbon    MeshPayload      `json:"ribbon"`
	Blocks    []BlockPayload   `json:"blocks"`
	Powerups  []PowerupPayload `json:"powerups"`
	Trigger   PlanePayload     `json:"trigger"`
}

func vec(v track.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func meshPayload(m *track.Mesh) MeshPayload {
	return MeshPayload{Vertices: m.Flatten(nil), Indices: m.Indices}
}

// NewSectionPayload converts a generated section.
func NewSectionPayload(s *track.Section) SectionPayload {
	p := SectionPayload{
		Type:      "section",
		Index:     s.Index,
		Start:     s.Start,
		Length:    s.Length,
		Challenge: s.Challenge,
		Curve:     s.CurveKind.String(),
		Prefabs:   make([]string, 0, len(s.Prefabs)),
		Ribbon:    meshPayload(&s.Ribbon),
		Blocks:    make([]BlockPayload, 0, len(s.Blocks)),
		Powerups:  make([]PowerupPayload, 0, len(s.Powerups)),
		Trigger:   PlanePayload{Normal: vec(s.Trigger.Normal), Offset: s.Trigger.Offset},
	}
	for _, k := range s.Prefabs {
		p.Prefabs = append(p.Prefabs, k.String())
	}
	for _, b := range s.Blocks {
		p.Blocks = append(p.Blocks, BlockPayload{
			Start:    b.Start,
			Duration: b.Duration,
			Left:     b.Left,
			Right:    b.Right,
			Height:   b.Height,
			Mesh:     meshPayload(&b.Mesh),
		})
	}
	for _, pu := range s.Powerups {
		p.Powerups = append(p.Powerups, PowerupPayload{
			Time:     pu.Time,
			Position: pu.Position,
			Mode:     pu.Mode.String(),
			At:       vec(pu.Sampled),
		})
	}
	return p
}
