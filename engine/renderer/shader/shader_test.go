package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestParseAnnotation(t *testing.T) {
	tcs := []struct {
		line    string
		want    AnnotationType
		wantNil bool
		wantErr bool
	}{
		{"// @medusa:include camera", annotationTypeInclude, false, false},
		{"   // @medusa:group 1 0 storage_uniform uniforms medusa_uniforms", AnnotationTypeBindingGroup, false, false},
		{"// @medusa:provider 0 0 camera", AnnotationTypeProvider, false, false},
		{"// plain comment", "", true, false},
		{"let x = 1.0; // @medusa:include camera", "", true, false},
		{"// @medusa:", "", false, true},
		{"// @medusa:include lights", "", false, true},
		{"// @medusa:group -1 0 storage_uniform camera camera", "", false, true},
		{"// @medusa:group 0 0 storage_write camera camera", "", false, true},
		{"// @medusa:provider 0 0 skybox", "", false, true},
		{"// @medusa:texture 0 0", "", false, true},
	}
	for _, tc := range tcs {
		a, err := parseAnnotation(tc.line, 1)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseAnnotation(%q) err=nil; want error", tc.line)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseAnnotation(%q) err=%v; want nil", tc.line, err)
		}
		if tc.wantNil {
			if a != nil {
				t.Fatalf("parseAnnotation(%q)=%+v; want nil", tc.line, a)
			}
			continue
		}
		if a == nil || a.Type != tc.want {
			t.Fatalf("parseAnnotation(%q)=%+v; want type %q", tc.line, a, tc.want)
		}
	}
}

func TestPreProcessorIncludesOnce(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("// @medusa:include camera\n// @medusa:include camera\n// @medusa:group 0 0 storage_uniform camera camera\n")
	if err != nil {
		t.Fatalf("Process error: %v", err)
	}
	if n := strings.Count(out, "struct CameraUniform"); n != 1 {
		t.Fatalf("CameraUniform defined %d times; want 1", n)
	}
	if !strings.Contains(out, "@group(0) @binding(0) var<uniform> camera: CameraUniform;") {
		t.Fatalf("expanded source missing camera declaration:\n%s", out)
	}
	if got := len(pp.Declarations()); got != 1 {
		t.Fatalf("len(Declarations())=%d; want 1", got)
	}
}

const instancedVertexSrc = `
// @medusa:include particle_instance
// @medusa:include camera
// @medusa:include particle_uniforms
// @medusa:group 0 0 storage_uniform camera camera
// @medusa:group 1 0 storage_uniform uniforms particle_uniforms

@vertex
fn vs_main(@builtin(vertex_index) vi: u32, inst: ParticleInstance) -> @builtin(position) vec4<f32> {
    return camera.projection * camera.view * vec4<f32>(inst.position * uniforms.size, 1.0);
}
`

func TestNewShaderFromSourceInstanced(t *testing.T) {
	s := NewShaderFromSource("points", ShaderTypeVertex, instancedVertexSrc)

	if s.EntryPoint() != "vs_main" {
		t.Fatalf("EntryPoint=%q; want vs_main", s.EntryPoint())
	}
	layouts := s.VertexLayouts()
	if len(layouts) != 1 {
		t.Fatalf("len(VertexLayouts())=%d; want 1", len(layouts))
	}
	if layouts[0].StepMode != wgpu.VertexStepModeInstance || layouts[0].ArrayStride != 16 {
		t.Fatalf("layout step=%v stride=%d; want instance/16", layouts[0].StepMode, layouts[0].ArrayStride)
	}
	if got := s.BindGroupVarName(1, 0); got != "uniforms" {
		t.Fatalf("BindGroupVarName(1,0)=%q; want uniforms", got)
	}

	tcs := []struct {
		group int
		size  uint64
	}{
		{0, 144},
		{1, 48},
	}
	for _, tc := range tcs {
		d := s.BindGroupLayoutDescriptor(tc.group)
		if len(d.Entries) != 1 {
			t.Fatalf("group %d entries=%d; want 1", tc.group, len(d.Entries))
		}
		if got := d.Entries[0].Buffer.MinBindingSize; got != tc.size {
			t.Fatalf("group %d MinBindingSize=%d; want %d", tc.group, got, tc.size)
		}
	}
}

func TestNewShaderFromSourcePanicsOnUnknownInclude(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("NewShaderFromSource with an unknown include did not panic")
		}
	}()
	NewShaderFromSource("bad", ShaderTypeFragment, "// @medusa:include lights\n")
}
