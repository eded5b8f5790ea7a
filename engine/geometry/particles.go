package geometry

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/medusa/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Particle field spread. Each coordinate is (r - offset) * extent for a uniform r in [0, 1).
const (
	fieldExtentXZ float32 = 10
	fieldOffsetXZ float32 = 0.5
	fieldExtentY  float32 = 10.5
	fieldOffsetY  float32 = 0.1
)

// ParticleField is a fixed set of particle positions and per-particle size multipliers.
type ParticleField struct {
	Positions []mgl32.Vec3
	Scales    []float32
}

// NewParticleField scatters count particles: x and z fall in [-5, 5), y in [-1.05, 9.45) and
// every scale in [0, 1). Exactly count particles are produced.
//
// Parameters:
//   - count: the number of particles, negative values are treated as 0
//   - rng: the random source, so fields are reproducible from a seed
//
// Returns:
//   - *ParticleField: the generated field
func NewParticleField(count int, rng *rand.Rand) *ParticleField {
	count = max(0, count)
	f := &ParticleField{
		Positions: make([]mgl32.Vec3, count),
		Scales:    make([]float32, count),
	}
	for i := range count {
		f.Positions[i] = mgl32.Vec3{
			(rng.Float32() - fieldOffsetXZ) * fieldExtentXZ,
			(rng.Float32() - fieldOffsetY) * fieldExtentY,
			(rng.Float32() - fieldOffsetXZ) * fieldExtentXZ,
		}
		f.Scales[i] = rng.Float32()
	}
	return f
}

// Len returns the number of particles in the field.
func (f *ParticleField) Len() int {
	return len(f.Positions)
}

// Instances converts the field into per-instance GPU records.
//
// Returns:
//   - []model.GPUParticle: one record per particle, in field order
func (f *ParticleField) Instances() []model.GPUParticle {
	out := make([]model.GPUParticle, len(f.Positions))
	for i := range f.Positions {
		out[i] = model.GPUParticle{Position: f.Positions[i], Scale: f.Scales[i]}
	}
	return out
}
