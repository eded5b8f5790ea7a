package model

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestWithMesh(t *testing.T) {
	vertices := []GPUVertex{
		{Position: [3]float32{0, 1, 0}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{0.5, 1}},
		{Position: [3]float32{1, 0, 0}, Normal: [3]float32{1, 0, 0}, UV: [2]float32{0, 0}},
		{Position: [3]float32{0, 0, 1}, Normal: [3]float32{0, 0, 1}, UV: [2]float32{1, 0}},
	}
	m := NewModel(WithName("tri"), WithMesh(vertices, []uint32{0, 1, 2}))

	if got := len(m.VertexData()); got != 3*32 {
		t.Fatalf("len(VertexData())=%d; want 96", got)
	}
	if got := len(m.IndexData()); got != 12 {
		t.Fatalf("len(IndexData())=%d; want 12", got)
	}
	if m.IndexCount() != 3 || m.InstanceCount() != 1 {
		t.Fatalf("IndexCount=%d InstanceCount=%d; want 3/1", m.IndexCount(), m.InstanceCount())
	}
	if got := m.MeshProvider().Label(); got != "tri Mesh" {
		t.Fatalf("MeshProvider().Label()=%q; want %q", got, "tri Mesh")
	}
	// second vertex normal.x sits at 32 + 12
	if got := math.Float32frombits(binary.LittleEndian.Uint32(m.VertexData()[44:])); got != 1 {
		t.Fatalf("vertex[1].normal.x=%v; want 1", got)
	}
}

func TestWithInstances(t *testing.T) {
	particles := make([]GPUParticle, 1000)
	particles[999] = GPUParticle{Position: [3]float32{1, 2, 3}, Scale: 0.5}
	m := NewModel(WithName("particles"), WithInstances(particles, 6))

	if m.IndexCount() != 0 || m.IndexData() != nil {
		t.Fatalf("instanced model has index data")
	}
	if m.VertexCount() != 6 || m.InstanceCount() != 1000 {
		t.Fatalf("VertexCount=%d InstanceCount=%d; want 6/1000", m.VertexCount(), m.InstanceCount())
	}
	if got := len(m.VertexData()); got != 16000 {
		t.Fatalf("len(VertexData())=%d; want 16000", got)
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(m.VertexData()[999*16+12:])); got != 0.5 {
		t.Fatalf("last scale=%v; want 0.5", got)
	}
}

func TestGPUTypeSizes(t *testing.T) {
	if got := (&GPUVertex{}).Size(); got != 32 {
		t.Fatalf("GPUVertex.Size()=%d; want 32", got)
	}
	if got := (&GPUParticle{}).Size(); got != 16 {
		t.Fatalf("GPUParticle.Size()=%d; want 16", got)
	}
}
