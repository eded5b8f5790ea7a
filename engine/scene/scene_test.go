package scene

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/Carmen-Shannon/medusa/engine/camera"
	"github.com/Carmen-Shannon/medusa/engine/geometry"
	"github.com/Carmen-Shannon/medusa/engine/model"
	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
	"github.com/Carmen-Shannon/medusa/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/medusa/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

const meshVertexSrc = `
// @medusa:include vertex
// @medusa:include camera
// @medusa:include medusa_uniforms
// @medusa:group 0 0 storage_uniform camera camera
// @medusa:group 1 0 storage_uniform uniforms medusa_uniforms

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return camera.projection * camera.view * vec4<f32>(in.position * uniforms.width, 1.0);
}
`

const meshFragmentSrc = `
// @medusa:include medusa_uniforms
// @medusa:group 1 0 storage_uniform uniforms medusa_uniforms

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return uniforms.colorStart;
}
`

const pointVertexSrc = `
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

const pointFragmentSrc = `
// @medusa:include particle_uniforms
// @medusa:group 1 0 storage_uniform uniforms particle_uniforms

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return uniforms.colorStart;
}
`

func newTestScene(t *testing.T) (Scene, *renderertest.Renderer, model.Model, model.Model) {
	t.Helper()
	r := renderertest.New(800, 600)
	cam := camera.NewCamera(camera.WithController(camera.NewCameraController()))
	s := NewScene("test", cam, r, WithMarshalWorkers(2))

	vertices, indices := geometry.NewSphere(0.9, 8, 6)
	sphere := model.NewModel(
		model.WithName("sphere"),
		model.WithMaterial(material.NewMedusaMaterial()),
		model.WithMesh(vertices, indices),
	)
	field := geometry.NewParticleField(10, rand.New(rand.NewPCG(1, 2)))
	points := model.NewModel(
		model.WithName("points"),
		model.WithMaterial(material.NewParticleMaterial()),
		model.WithInstances(field.Instances(), 6),
	)

	meshVS := shader.NewShaderFromSource("mesh_vs", shader.ShaderTypeVertex, meshVertexSrc)
	meshFS := shader.NewShaderFromSource("mesh_fs", shader.ShaderTypeFragment, meshFragmentSrc)
	pointVS := shader.NewShaderFromSource("point_vs", shader.ShaderTypeVertex, pointVertexSrc)
	pointFS := shader.NewShaderFromSource("point_fs", shader.ShaderTypeFragment, pointFragmentSrc)

	if err := s.Add(sphere, meshVS, meshFS); err != nil {
		t.Fatalf("Add(sphere) error: %v", err)
	}
	if err := s.Add(points, pointVS, pointFS); err != nil {
		t.Fatalf("Add(points) error: %v", err)
	}
	return s, r, sphere, points
}

func TestAddRegistersPipelinesAndBindGroups(t *testing.T) {
	s, r, sphere, points := newTestScene(t)

	if s.Count() != 2 {
		t.Fatalf("Count()=%d; want 2", s.Count())
	}
	if got := s.Models(); got[0] != sphere || got[1] != points {
		t.Fatalf("Models() not in insertion order")
	}

	var bindGroups, pipelines []string
	for _, c := range r.Calls() {
		switch c.Method {
		case "InitBindGroup":
			bindGroups = append(bindGroups, c.Arg)
		case "RegisterPipeline":
			pipelines = append(pipelines, c.Arg)
		}
	}
	if want := []string{"medusa", "particles"}; !slices.Equal(pipelines, want) {
		t.Fatalf("registered pipelines=%v; want %v", pipelines, want)
	}

	camLabel := s.Camera().BindGroupProvider().Label()
	want := []string{camLabel, "medusa Material", "particles Material"}
	if !slices.Equal(bindGroups, want) {
		t.Fatalf("InitBindGroup labels=%v; want %v (camera initialized once)", bindGroups, want)
	}

	layout, ok := r.Layout("medusa Material")
	if !ok || len(layout.Entries) != 1 {
		t.Fatalf("medusa material layout=%+v; want one entry", layout)
	}
	if vis := layout.Entries[0].Visibility; vis != wgpu.ShaderStageVertex|wgpu.ShaderStageFragment {
		t.Fatalf("medusa uniforms visibility=%v; want vertex|fragment", vis)
	}
	if got := sphere.MeshProvider().IndexCount(); got != sphere.IndexCount() {
		t.Fatalf("sphere index count=%d; want %d", got, sphere.IndexCount())
	}
}

func TestPrepareFrameWritesOnce(t *testing.T) {
	s, r, sphere, points := newTestScene(t)
	r.Reset()

	s.PrepareFrame()

	if got := r.Methods(); !slices.Equal(got, []string{"WriteBuffers"}) {
		t.Fatalf("PrepareFrame calls=%v; want a single WriteBuffers", got)
	}
	writes := r.Writes()
	if len(writes) != 3 {
		t.Fatalf("len(writes)=%d; want 3", len(writes))
	}
	if writes[0].Provider != s.Camera().BindGroupProvider() || len(writes[0].Data) != 144 {
		t.Fatalf("first write should carry the 144 byte camera uniform")
	}
	if writes[1].Provider != sphere.Material().BindGroupProvider() || len(writes[1].Data) != 64 {
		t.Fatalf("second write should carry the 64 byte medusa block")
	}
	if writes[2].Provider != points.Material().BindGroupProvider() || len(writes[2].Data) != 48 {
		t.Fatalf("third write should carry the 48 byte particle block")
	}
}

func TestDrawCallsInInsertionOrder(t *testing.T) {
	s, r, _, _ := newTestScene(t)
	r.Reset()

	if err := s.DrawCalls(); err != nil {
		t.Fatalf("DrawCalls() error: %v", err)
	}
	var keys []string
	for _, c := range r.Calls() {
		if c.Method == "DrawCall" {
			keys = append(keys, c.Arg)
		}
	}
	if want := []string{"medusa", "particles"}; !slices.Equal(keys, want) {
		t.Fatalf("draw order=%v; want %v", keys, want)
	}
}

func TestAddErrors(t *testing.T) {
	r := renderertest.New(800, 600)
	s := NewScene("errors", camera.NewCamera(), r)

	meshVS := shader.NewShaderFromSource("mesh_vs", shader.ShaderTypeVertex, meshVertexSrc)
	meshFS := shader.NewShaderFromSource("mesh_fs", shader.ShaderTypeFragment, meshFragmentSrc)

	bare := model.NewModel(model.WithName("bare"))
	if err := s.Add(bare, meshVS, meshFS); !errors.Is(err, ErrNoMaterial) {
		t.Fatalf("Add(no material)=%v; want ErrNoMaterial", err)
	}

	boom := errors.New("boom")
	r.RegisterErr = boom
	m := model.NewModel(model.WithName("m"), model.WithMaterial(material.NewMedusaMaterial()))
	if err := s.Add(m, meshVS, meshFS); !errors.Is(err, boom) {
		t.Fatalf("Add(register fails)=%v; want wrapped boom", err)
	}
	if s.Count() != 0 {
		t.Fatalf("Count()=%d; want 0 after failed adds", s.Count())
	}
}

func TestNewScenePanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("NewScene(nil camera) did not panic")
		}
	}()
	NewScene("nil", nil, renderertest.New(1, 1))
}
