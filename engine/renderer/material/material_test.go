package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/medusa/common"
)

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestMedusaMaterialDefaults(t *testing.T) {
	m := NewMedusaMaterial()

	tcs := []struct {
		name string
		got  float32
		want float32
	}{
		{"uTime", m.Time.Value(), 0},
		{"uWidth", m.Width.Value(), 1.7},
		{"uSpeed", m.Speed.Value(), 0.75},
		{"uElevation", m.Elevation.Value(), 0.2},
		{"uIteration", m.Iteration.Value(), 0.3},
		{"uSmallfrequency", m.SmallFrequency.Value(), 0.3},
	}
	for _, tc := range tcs {
		if tc.got != tc.want {
			t.Fatalf("%s=%v; want %v", tc.name, tc.got, tc.want)
		}
	}
	if got := m.ColorStart.Value().Hex(); got != "#0b4e69" {
		t.Fatalf("uColorStart=%s; want #0b4e69", got)
	}
	if got := m.ColorEnd.Value().Hex(); got != "#000000" {
		t.Fatalf("uColorEnd=%s; want #000000", got)
	}

	rs := m.RenderState()
	if rs.Blending != BlendModeAdditive || !rs.DepthTest || rs.DepthWrite {
		t.Fatalf("medusa render state=%+v; want additive, depth test on, depth write off", rs)
	}
	if m.PipelineKey() != "medusa" {
		t.Fatalf("PipelineKey=%q; want medusa", m.PipelineKey())
	}
	if m.BindGroupProvider() == nil {
		t.Fatalf("BindGroupProvider is nil")
	}
}

func TestMedusaMaterialMarshalLayout(t *testing.T) {
	m := NewMedusaMaterial()
	m.Time.Set(2.5)
	m.Width.Set(1.5)
	m.ColorStart.Set(common.Color{R: 1, G: 1, B: 1})

	buf := m.Marshal()
	if len(buf) != 64 {
		t.Fatalf("len(Marshal())=%d; want 64", len(buf))
	}
	if got := floatAt(buf, 0); math.Abs(float64(got-1)) > 1e-6 {
		t.Fatalf("colorStart.r=%v; want 1", got)
	}
	if got := floatAt(buf, 12); got != 1 {
		t.Fatalf("colorStart.a=%v; want 1", got)
	}
	if got := floatAt(buf, 32); got != 2.5 {
		t.Fatalf("time=%v; want 2.5", got)
	}
	if got := floatAt(buf, 36); got != 1.5 {
		t.Fatalf("width=%v; want 1.5", got)
	}
	if got := floatAt(buf, 52); got != 0.3 {
		t.Fatalf("smallFrequency=%v; want 0.3", got)
	}
}

func TestParticleMaterialMarshalLayout(t *testing.T) {
	m := NewParticleMaterial()
	m.PixelRatio.Set(2)
	m.Size.Set(250)
	m.Time.Set(4)
	m.Resolution.Set([2]float32{1600, 1200})

	buf := m.Marshal()
	if len(buf) != 48 {
		t.Fatalf("len(Marshal())=%d; want 48", len(buf))
	}
	tcs := []struct {
		offset int
		want   float32
	}{
		{16, 1600},
		{20, 1200},
		{24, 2},
		{28, 250},
		{32, 4},
	}
	for _, tc := range tcs {
		if got := floatAt(buf, tc.offset); got != tc.want {
			t.Fatalf("float at %d=%v; want %v", tc.offset, got, tc.want)
		}
	}

	rs := m.RenderState()
	if rs.DepthTest || rs.DepthWrite || rs.Blending != BlendModeAdditive {
		t.Fatalf("particle render state=%+v; want additive with depth off", rs)
	}
}

func TestUniformsSnapshotIsolated(t *testing.T) {
	m := NewParticleMaterial()
	before := m.Uniforms()
	m.Size.Set(321)
	after := m.Uniforms()

	for name, v := range after {
		if name == "uSize" {
			if v != float32(321) {
				t.Fatalf("uSize=%v; want 321", v)
			}
			continue
		}
		if before[name] != v {
			t.Fatalf("%s changed from %v to %v", name, before[name], v)
		}
	}
}

func TestWithNameOverridesPipelineKey(t *testing.T) {
	m := NewMedusaMaterial(WithName("bell"))
	if m.Name() != "bell" || m.PipelineKey() != "bell" {
		t.Fatalf("name=%q key=%q; want bell/bell", m.Name(), m.PipelineKey())
	}
	m = NewMedusaMaterial(WithPipelineKey("shared"), WithName("bell"))
	if m.PipelineKey() != "shared" {
		t.Fatalf("key=%q; want shared", m.PipelineKey())
	}
}

func TestGPUTypeSizes(t *testing.T) {
	if got := (&GPUMedusaUniforms{}).Size(); got != 64 {
		t.Fatalf("GPUMedusaUniforms.Size()=%d; want 64", got)
	}
	if got := (&GPUParticleUniforms{}).Size(); got != 48 {
		t.Fatalf("GPUParticleUniforms.Size()=%d; want 48", got)
	}
}
