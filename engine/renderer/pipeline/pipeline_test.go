package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestWithRenderState(t *testing.T) {
	tcs := []struct {
		name      string
		state     material.RenderState
		wantBlend bool
		wantDst   wgpu.BlendFactor
		wantTest  bool
		wantWrite bool
	}{
		{"medusa", material.RenderState{Blending: material.BlendModeAdditive, DepthTest: true}, true, wgpu.BlendFactorOne, true, false},
		{"particles", material.RenderState{Blending: material.BlendModeAdditive}, true, wgpu.BlendFactorOne, false, false},
		{"normal", material.RenderState{Blending: material.BlendModeNormal, DepthTest: true, DepthWrite: true}, true, wgpu.BlendFactorOneMinusSrcAlpha, true, true},
		{"opaque", material.RenderState{Blending: material.BlendModeNone, DepthTest: true, DepthWrite: true}, false, wgpu.BlendFactorOneMinusSrcAlpha, true, true},
	}
	for _, tc := range tcs {
		p := NewPipeline(tc.name, WithRenderState(tc.state))
		if p.BlendEnabled() != tc.wantBlend {
			t.Fatalf("%s: BlendEnabled()=%v; want %v", tc.name, p.BlendEnabled(), tc.wantBlend)
		}
		if got := p.BlendState().Color.DstFactor; got != tc.wantDst {
			t.Fatalf("%s: Color.DstFactor=%v; want %v", tc.name, got, tc.wantDst)
		}
		if p.DepthTestEnabled() != tc.wantTest || p.DepthWriteEnabled() != tc.wantWrite {
			t.Fatalf("%s: depth test/write=%v/%v; want %v/%v", tc.name, p.DepthTestEnabled(), p.DepthWriteEnabled(), tc.wantTest, tc.wantWrite)
		}
	}
}

func TestPipelineDefaults(t *testing.T) {
	p := NewPipeline("default")
	if p.PipelineKey() != "default" {
		t.Fatalf("PipelineKey()=%q; want default", p.PipelineKey())
	}
	if p.Topology() != wgpu.PrimitiveTopologyTriangleList || p.CullMode() != wgpu.CullModeNone {
		t.Fatalf("topology/cull=%v/%v; want triangle list, no culling", p.Topology(), p.CullMode())
	}
	if p.RenderPipeline() != nil {
		t.Fatalf("RenderPipeline() set before creation")
	}
}
