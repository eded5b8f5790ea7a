package medusa

import (
	"context"
	"encoding/binary"
	"math"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/Carmen-Shannon/medusa/common"
	"github.com/Carmen-Shannon/medusa/engine"
	"github.com/Carmen-Shannon/medusa/engine/clock"
	"github.com/Carmen-Shannon/medusa/engine/debug"
	"github.com/Carmen-Shannon/medusa/engine/renderer/renderertest"
)

func newTestScene(t *testing.T) (*Scene, *DebugState, *renderertest.Renderer) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ParticleCount = 50
	r := renderertest.New(800, 600)
	state := NewDebugState()
	s, err := BuildScene(cfg, state, NewCamera(cfg, 800, 600), r, rand.New(rand.NewPCG(7, 11)))
	if err != nil {
		t.Fatalf("BuildScene error: %v", err)
	}
	return s, state, r
}

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate()=%v; want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tcs := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative fps", func(c *Config) { c.FPS = -1 }},
		{"msaa 3", func(c *Config) { c.MSAA = 3 }},
		{"flat sphere", func(c *Config) { c.SphereHeightSegments = 1 }},
		{"far before near", func(c *Config) { c.CameraFar = 0.05 }},
		{"fov 180", func(c *Config) { c.CameraFov = 180 }},
	}
	for _, tc := range tcs {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("Validate(%s)=nil; want error", tc.name)
		}
	}
}

func TestBuildScene(t *testing.T) {
	s, _, r := newTestScene(t)

	if got := s.Models(); len(got) != 2 || got[0] != s.Sphere || got[1] != s.Particles {
		t.Fatalf("Models()=%v; want [sphere particles]", got)
	}
	if s.Sphere.IndexCount() != 3648 {
		t.Fatalf("sphere IndexCount=%d; want 3648", s.Sphere.IndexCount())
	}
	if s.Particles.InstanceCount() != 50 || s.Particles.VertexCount() != 6 {
		t.Fatalf("particles instances=%d vertices=%d; want 50/6", s.Particles.InstanceCount(), s.Particles.VertexCount())
	}
	if r.Pipeline("medusa") == nil || r.Pipeline("particles") == nil {
		t.Fatalf("pipelines medusa=%v particles=%v; want both registered", r.Pipeline("medusa"), r.Pipeline("particles"))
	}
	if got := r.ClearColor().Hex(); got != DefaultClearColor {
		t.Fatalf("clear color=%s; want %s", got, DefaultClearColor)
	}
	if got := s.ParticleMaterial.Resolution.Value(); got != [2]float32{800, 600} {
		t.Fatalf("uResolution=%v; want [800 600]", got)
	}
}

func TestBuildSceneMalformedColor(t *testing.T) {
	cfg := DefaultConfig()
	state := NewDebugState()
	state.ColorEnd = "black-ish"
	r := renderertest.New(800, 600)
	if _, err := BuildScene(cfg, state, NewCamera(cfg, 800, 600), r, rand.New(rand.NewPCG(1, 1))); err == nil {
		t.Fatalf("BuildScene with malformed colorEnd succeeded; want error")
	}
}

func TestBindingsOrderAndTargets(t *testing.T) {
	s, state, r := newTestScene(t)
	bindings := Bindings(s, state, r)

	var names []string
	for _, b := range bindings {
		names = append(names, b.Name())
	}
	want := []string{"MedusaWidth", "colorStart", "colorEnd", "particlesSizes", "particlesStart", "clearColor"}
	if !slices.Equal(names, want) {
		t.Fatalf("binding names=%v; want %v", names, want)
	}

	panel := debug.NewPanel()
	if err := panel.Add(bindings...); err != nil {
		t.Fatalf("panel.Add error: %v", err)
	}
	if err := panel.Set("MedusaWidth", "5"); err != nil {
		t.Fatalf("Set(MedusaWidth) error: %v", err)
	}
	if got := s.MedusaMaterial.Width.Value(); got != 1.9 {
		t.Fatalf("uWidth=%v; want clamped to 1.9", got)
	}
	if err := panel.Set("particlesSizes", "123.4"); err != nil {
		t.Fatalf("Set(particlesSizes) error: %v", err)
	}
	if got := s.ParticleMaterial.Size.Value(); got != 123 {
		t.Fatalf("uSize=%v; want 123", got)
	}
}

func TestColorBindingChangesOnlyItsUniform(t *testing.T) {
	s, state, r := newTestScene(t)
	panel := debug.NewPanel()
	if err := panel.Add(Bindings(s, state, r)...); err != nil {
		t.Fatalf("panel.Add error: %v", err)
	}

	before := s.MedusaMaterial.Uniforms()
	particlesBefore := s.ParticleMaterial.Uniforms()
	if err := panel.Set("colorEnd", "#FF0000"); err != nil {
		t.Fatalf("Set(colorEnd) error: %v", err)
	}
	after := s.MedusaMaterial.Uniforms()
	for name, v := range after {
		if name == "uColorEnd" {
			if got := v.(common.Color).Hex(); got != "#ff0000" {
				t.Fatalf("uColorEnd=%s; want #ff0000", got)
			}
			continue
		}
		if before[name] != v {
			t.Fatalf("%s changed from %v to %v", name, before[name], v)
		}
	}
	for name, v := range s.ParticleMaterial.Uniforms() {
		if particlesBefore[name] != v {
			t.Fatalf("particle %s changed from %v to %v", name, particlesBefore[name], v)
		}
	}
	if state.ColorEnd != "#ff0000" {
		t.Fatalf("state.ColorEnd=%q; want #ff0000", state.ColorEnd)
	}

	if err := panel.Set("clearColor", "#102030"); err != nil {
		t.Fatalf("Set(clearColor) error: %v", err)
	}
	if got := r.ClearColor().Hex(); got != "#102030" {
		t.Fatalf("clear color=%s; want #102030", got)
	}
}

func TestResizeHandler(t *testing.T) {
	tcs := []struct {
		width, height  int
		dpr            float32
		wantAspect     float32
		wantRatio      float32
		wantResolution [2]float32
	}{
		{800, 600, 1, 800.0 / 600.0, 1, [2]float32{800, 600}},
		{1024, 512, 3, 2, 2, [2]float32{2048, 1024}},
		{640, 480, 0.5, 640.0 / 480.0, 1, [2]float32{640, 480}},
	}
	for _, tc := range tcs {
		s, _, r := newTestScene(t)
		h := NewResizeHandler(s.Camera(), r, s.ParticleMaterial)
		h.Handle(tc.width, tc.height, tc.dpr)

		if got := s.Camera().Aspect(); math.Abs(float64(got-tc.wantAspect)) > 1e-6 {
			t.Fatalf("Handle(%d,%d,%v) aspect=%v; want %v", tc.width, tc.height, tc.dpr, got, tc.wantAspect)
		}
		if got := s.ParticleMaterial.PixelRatio.Value(); got != tc.wantRatio {
			t.Fatalf("Handle(%d,%d,%v) uPixelRatio=%v; want %v", tc.width, tc.height, tc.dpr, got, tc.wantRatio)
		}
		if got := s.ParticleMaterial.Resolution.Value(); got != tc.wantResolution {
			t.Fatalf("Handle(%d,%d,%v) uResolution=%v; want %v", tc.width, tc.height, tc.dpr, got, tc.wantResolution)
		}
	}
}

func TestResizeHandlerIgnoresMinimized(t *testing.T) {
	s, _, r := newTestScene(t)
	h := NewResizeHandler(s.Camera(), r, s.ParticleMaterial)
	aspect := s.Camera().Aspect()
	h.Handle(0, 0, 1)
	if got := s.Camera().Aspect(); got != aspect {
		t.Fatalf("aspect after Handle(0,0)=%v; want %v", got, aspect)
	}
	if w, hgt := r.Size(); w != 800 || hgt != 600 {
		t.Fatalf("size after Handle(0,0)=%dx%d; want 800x600", w, hgt)
	}
}

// Every frame's uniform writes must carry that frame's elapsed time and land before BeginFrame.
func TestLoopWritesFrameTimeBeforeDraw(t *testing.T) {
	s, _, r := newTestScene(t)
	r.Reset()

	start := time.Unix(0, 0)
	now := start
	clk := clock.New(clock.WithNow(func() time.Time {
		now = now.Add(250 * time.Millisecond)
		return now
	}))

	loop := NewLoop(s)
	var elapsed []float32
	eng := engine.NewEngine(
		engine.WithScheduler(engine.NewStepScheduler(3)),
		engine.WithClock(clk),
		engine.WithScene(0, s),
		engine.WithTickCallback(func(e, dt float32) {
			elapsed = append(elapsed, e)
			loop.Tick(e, dt)
		}),
	)
	if err := eng.Run(context.Background()); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(elapsed) != 3 {
		t.Fatalf("ticks=%d; want 3", len(elapsed))
	}

	wantMethods := []string{}
	for range 3 {
		wantMethods = append(wantMethods, "WriteBuffers", "BeginFrame", "DrawCall", "DrawCall", "EndFrame", "Present")
	}
	if got := r.Methods(); !slices.Equal(got, wantMethods) {
		t.Fatalf("methods=%v; want %v", got, wantMethods)
	}

	writes := r.Writes()
	if len(writes) != 9 {
		t.Fatalf("writes=%d; want 9", len(writes))
	}
	for frame := range 3 {
		medusa, particles := writes[frame*3+1], writes[frame*3+2]
		if got := floatAt(medusa.Data, 32); got != elapsed[frame] {
			t.Fatalf("frame %d medusa time=%v; want %v", frame, got, elapsed[frame])
		}
		if got := floatAt(particles.Data, 32); got != elapsed[frame] {
			t.Fatalf("frame %d particle time=%v; want %v", frame, got, elapsed[frame])
		}
	}
	for i := 1; i < len(elapsed); i++ {
		if elapsed[i] < elapsed[i-1] {
			t.Fatalf("elapsed went backwards: %v", elapsed)
		}
	}
}

func TestOrbitInput(t *testing.T) {
	cam := NewCamera(DefaultConfig(), 800, 600)
	ctrl := cam.Controller()
	ctrl.SetDamping(false, 1)
	in := NewOrbitInput(cam, func() int { return 600 })

	azimuth := ctrl.Azimuth()
	in.MouseMove(10, 10)
	ctrl.Update()
	if got := ctrl.Azimuth(); got != azimuth {
		t.Fatalf("azimuth after move without drag=%v; want %v", got, azimuth)
	}

	in.MouseDown(common.MouseButtonLeft, 100, 100)
	in.MouseMove(130, 100)
	in.MouseUp(common.MouseButtonLeft, 130, 100)
	ctrl.Update()
	if got := ctrl.Azimuth(); got == azimuth {
		t.Fatalf("azimuth after left drag unchanged at %v", got)
	}

	target := ctrl.Target()
	in.MouseDown(common.MouseButtonRight, 0, 0)
	in.MouseMove(20, 0)
	in.MouseUp(common.MouseButtonRight, 20, 0)
	ctrl.Update()
	if got := ctrl.Target(); got == target {
		t.Fatalf("target after right drag unchanged at %v", got)
	}

	radius := ctrl.Radius()
	in.Scroll(1)
	ctrl.Update()
	if got := ctrl.Radius(); got >= radius {
		t.Fatalf("radius after scroll=%v; want < %v", got, radius)
	}
}

func TestPixelRatio(t *testing.T) {
	tcs := []struct {
		in, want float32
	}{
		{1, 1},
		{1.5, 1.5},
		{2, 2},
		{3, 2},
		{0, 1},
		{float32(math.NaN()), 1},
	}
	for _, tc := range tcs {
		if got := PixelRatio(tc.in); got != tc.want {
			t.Fatalf("PixelRatio(%v)=%v; want %v", tc.in, got, tc.want)
		}
	}
}
