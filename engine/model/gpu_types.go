package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"slices"
	"unsafe"

	"github.com/Carmen-Shannon/medusa/common"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (32 bytes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 32 bytes, no padding required.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: unit vertex normal (12 bytes)
	UV       [2]float32 // offset 24: texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf[0:], g.Position[:])
	putFloats(buf[12:], g.Normal[:])
	putFloats(buf[24:], g.UV[:])
	return buf
}

// GPUParticleInstanceSource is the canonical WGSL definition of the ParticleInstance struct.
// Matches GPUParticle layout exactly (16 bytes).
//
//go:embed assets/particle_instance.wgsl
var GPUParticleInstanceSource string

// GPUParticle is the per-instance record of one particle: its model-space position and a random
// scale in [0, 1) that multiplies the on-screen size.
// Size: 16 bytes.
type GPUParticle struct {
	Position [3]float32 // offset  0: particle position (12 bytes)
	Scale    float32    // offset 12: size multiplier (4 bytes)
}

// Size returns the size of the GPUParticle struct in bytes.
func (g *GPUParticle) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUParticle struct into a byte buffer suitable for GPU upload.
func (g *GPUParticle) Marshal() []byte {
	buf := make([]byte, g.Size())
	putFloats(buf[0:], g.Position[:])
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.Scale))
	return buf
}

// MarshalVertices packs a vertex slice into one contiguous upload buffer.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices) * 32 bytes
func MarshalVertices(vertices []GPUVertex) []byte {
	if len(vertices) == 0 {
		return nil
	}
	stride := vertices[0].Size()
	buf := make([]byte, 0, stride*len(vertices))
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalParticles packs a particle slice into one contiguous instance buffer.
func MarshalParticles(particles []GPUParticle) []byte {
	if len(particles) == 0 {
		return nil
	}
	buf := make([]byte, 0, particles[0].Size()*len(particles))
	for i := range particles {
		buf = append(buf, particles[i].Marshal()...)
	}
	return buf
}

// MarshalIndices copies a uint32 index slice into an IndexFormatUint32 index buffer.
// Every WebGPU target is little-endian, so the in-memory layout is uploaded as is.
func MarshalIndices(indices []uint32) []byte {
	return slices.Clone(common.SliceToBytes(indices))
}

func putFloats(dst []byte, values []float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
