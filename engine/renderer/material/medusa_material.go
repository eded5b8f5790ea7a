package material

import (
	"github.com/Carmen-Shannon/medusa/common"
)

// Default uniform values of the medusa material.
const (
	DefaultMedusaWidth          float32 = 1.7
	DefaultMedusaSpeed          float32 = 0.75
	DefaultMedusaElevation      float32 = 0.2
	DefaultMedusaIteration      float32 = 0.3
	DefaultMedusaSmallFrequency float32 = 0.3
	DefaultMedusaColorStart             = "#0b4e69"
	DefaultMedusaColorEnd               = "#000000"
)

// MedusaMaterial drives the animated sphere: a pulsing, rippling bell whose color runs from
// ColorStart to ColorEnd. It is transparent, additively blended and does not write depth.
type MedusaMaterial struct {
	*material

	Time           *Uniform[float32]
	Width          *Uniform[float32]
	Speed          *Uniform[float32]
	Elevation      *Uniform[float32]
	Iteration      *Uniform[float32]
	SmallFrequency *Uniform[float32]
	ColorStart     *Uniform[common.Color]
	ColorEnd       *Uniform[common.Color]
}

var _ Material = &MedusaMaterial{}

// NewMedusaMaterial creates a medusa material with its default uniform values.
//
// Parameters:
//   - options: a variadic list of MaterialBuilderOption functions
//
// Returns:
//   - *MedusaMaterial: the new material
func NewMedusaMaterial(options ...MaterialBuilderOption) *MedusaMaterial {
	state := RenderState{Blending: BlendModeAdditive, DepthTest: true, DepthWrite: false}
	return &MedusaMaterial{
		material:       newMaterial("medusa", state, options...),
		Time:           NewUniform[float32]("uTime", 0),
		Width:          NewUniform("uWidth", DefaultMedusaWidth),
		Speed:          NewUniform("uSpeed", DefaultMedusaSpeed),
		Elevation:      NewUniform("uElevation", DefaultMedusaElevation),
		Iteration:      NewUniform("uIteration", DefaultMedusaIteration),
		SmallFrequency: NewUniform("uSmallfrequency", DefaultMedusaSmallFrequency),
		ColorStart:     NewUniform("uColorStart", common.MustParseHex(DefaultMedusaColorStart)),
		ColorEnd:       NewUniform("uColorEnd", common.MustParseHex(DefaultMedusaColorEnd)),
	}
}

func (m *MedusaMaterial) Uniforms() map[string]any {
	out := make(map[string]any, 8)
	for _, u := range []*Uniform[float32]{m.Time, m.Width, m.Speed, m.Elevation, m.Iteration, m.SmallFrequency} {
		out[u.Name()] = u.Value()
	}
	out[m.ColorStart.Name()] = m.ColorStart.Value()
	out[m.ColorEnd.Name()] = m.ColorEnd.Value()
	return out
}

func (m *MedusaMaterial) Marshal() []byte {
	g := GPUMedusaUniforms{
		ColorStart:     m.ColorStart.Value().Vec4(1),
		ColorEnd:       m.ColorEnd.Value().Vec4(1),
		Time:           m.Time.Value(),
		Width:          m.Width.Value(),
		Speed:          m.Speed.Value(),
		Elevation:      m.Elevation.Value(),
		Iteration:      m.Iteration.Value(),
		SmallFrequency: m.SmallFrequency.Value(),
	}
	return g.Marshal()
}
