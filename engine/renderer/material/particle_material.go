package material

import (
	"github.com/Carmen-Shannon/medusa/common"
)

// Default uniform values of the particle material.
const (
	DefaultParticleSize       float32 = 100
	DefaultParticleColorStart         = "#7b0b8a"
)

// ParticleMaterial draws each particle instance as a soft additive disc whose on-screen size
// scales with Size, the instance scale, PixelRatio and inverse view depth.
// It ignores depth entirely so particles are never occluded by the sphere.
type ParticleMaterial struct {
	*material

	PixelRatio *Uniform[float32]
	Size       *Uniform[float32]
	Time       *Uniform[float32]
	ColorStart *Uniform[common.Color]
	Resolution *Uniform[[2]float32]
}

var _ Material = &ParticleMaterial{}

// NewParticleMaterial creates a particle material with its default uniform values. PixelRatio
// starts at 1 and Resolution at 1x1 until the first resize pushes real values.
//
// Parameters:
//   - options: a variadic list of MaterialBuilderOption functions
//
// Returns:
//   - *ParticleMaterial: the new material
func NewParticleMaterial(options ...MaterialBuilderOption) *ParticleMaterial {
	state := RenderState{Blending: BlendModeAdditive, DepthTest: false, DepthWrite: false}
	return &ParticleMaterial{
		material:   newMaterial("particles", state, options...),
		PixelRatio: NewUniform[float32]("uPixelRatio", 1),
		Size:       NewUniform("uSize", DefaultParticleSize),
		Time:       NewUniform[float32]("uTime", 0),
		ColorStart: NewUniform("uColorStart", common.MustParseHex(DefaultParticleColorStart)),
		Resolution: NewUniform("uResolution", [2]float32{1, 1}),
	}
}

func (m *ParticleMaterial) Uniforms() map[string]any {
	return map[string]any{
		m.PixelRatio.Name(): m.PixelRatio.Value(),
		m.Size.Name():       m.Size.Value(),
		m.Time.Name():       m.Time.Value(),
		m.ColorStart.Name(): m.ColorStart.Value(),
		m.Resolution.Name(): m.Resolution.Value(),
	}
}

func (m *ParticleMaterial) Marshal() []byte {
	g := GPUParticleUniforms{
		ColorStart: m.ColorStart.Value().Vec4(1),
		Resolution: m.Resolution.Value(),
		PixelRatio: m.PixelRatio.Value(),
		PointSize:  m.Size.Value(),
		Time:       m.Time.Value(),
	}
	return g.Marshal()
}
