package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMedusaUniformsSource is the canonical WGSL definition of the MedusaUniforms struct.
// Matches GPUMedusaUniforms layout exactly (64 bytes).
//
//go:embed assets/medusa_uniforms.wgsl
var GPUMedusaUniformsSource string

// GPUMedusaUniforms is the GPU-aligned uniform block shared by the medusa vertex and fragment shaders.
// Matches the WGSL MedusaUniforms struct layout exactly (see GPUMedusaUniformsSource).
// Size: 64 bytes (56 bytes of fields rounded up to the 16-byte struct alignment).
type GPUMedusaUniforms struct {
	ColorStart     [4]float32 // offset  0: linear RGB gradient start, alpha unused (16 bytes)
	ColorEnd       [4]float32 // offset 16: linear RGB gradient end, alpha unused (16 bytes)
	Time           float32    // offset 32: elapsed seconds
	Width          float32    // offset 36: bell width multiplier
	Speed          float32    // offset 40: pulse speed
	Elevation      float32    // offset 44: pulse amplitude
	Iteration      float32    // offset 48: ripple amplitude
	SmallFrequency float32    // offset 52: ripple frequency
	_pad           [2]float32 // offset 56: padding to 64 bytes
}

// Size returns the size of the GPUMedusaUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPUMedusaUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMedusaUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload.
func (g *GPUMedusaUniforms) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf[0:], g.ColorStart[:]...)
	putFloats(buf[16:], g.ColorEnd[:]...)
	putFloats(buf[32:], g.Time, g.Width, g.Speed, g.Elevation, g.Iteration, g.SmallFrequency)
	return buf
}

// GPUParticleUniformsSource is the canonical WGSL definition of the ParticleUniforms struct.
// Matches GPUParticleUniforms layout exactly (48 bytes).
//
//go:embed assets/particle_uniforms.wgsl
var GPUParticleUniformsSource string

// GPUParticleUniforms is the GPU-aligned uniform block of the particle shaders.
// Size: 48 bytes (36 bytes of fields rounded up to the 16-byte struct alignment).
type GPUParticleUniforms struct {
	ColorStart [4]float32 // offset  0: linear RGB particle color, alpha unused (16 bytes)
	Resolution [2]float32 // offset 16: drawing buffer size in pixels (8 bytes)
	PixelRatio float32    // offset 24: capped device pixel ratio
	PointSize  float32    // offset 28: base point size in pixels
	Time       float32    // offset 32: elapsed seconds
	_pad       [3]float32 // offset 36: padding to 48 bytes
}

// Size returns the size of the GPUParticleUniforms struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (48)
func (g *GPUParticleUniforms) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUParticleUniforms struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload.
func (g *GPUParticleUniforms) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf[0:], g.ColorStart[:]...)
	putFloats(buf[16:], g.Resolution[:]...)
	putFloats(buf[24:], g.PixelRatio, g.PointSize, g.Time)
	return buf
}

func putFloats(dst []byte, values ...float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
