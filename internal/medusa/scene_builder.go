package medusa

import (
	"fmt"
	"math/rand/v2"

	"github.com/Carmen-Shannon/medusa/engine/camera"
	"github.com/Carmen-Shannon/medusa/engine/geometry"
	"github.com/Carmen-Shannon/medusa/engine/model"
	"github.com/Carmen-Shannon/medusa/engine/renderer"
	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
	"github.com/Carmen-Shannon/medusa/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/medusa/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the medusa scene graph: the sphere drawn first, then the particle cloud.
// The materials are exposed so bindings and the frame tick can drive their uniforms.
type Scene struct {
	scene.Scene

	Sphere    model.Model
	Particles model.Model

	MedusaMaterial   *material.MedusaMaterial
	ParticleMaterial *material.ParticleMaterial
}

// BuildScene generates the geometry, creates both materials from the panel state, and adds
// both models to a new scene drawing through cam and r.
//
// Parameters:
//   - cfg: the scene constants
//   - state: the panel state holding the initial colors
//   - cam: the scene camera
//   - r: the renderer the pipelines and buffers are created on
//   - rng: the random source for the particle field
//
// Returns:
//   - *Scene: the populated scene
//   - error: an error if a color is malformed or a pipeline or buffer cannot be created
func BuildScene(cfg *Config, state *DebugState, cam camera.Camera, r renderer.Renderer, rng *rand.Rand) (*Scene, error) {
	colorStart, colorEnd, particlesStart, clearColor, err := state.colors()
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	r.SetClearColor(clearColor)

	medusaMat := material.NewMedusaMaterial()
	medusaMat.ColorStart.Set(colorStart)
	medusaMat.ColorEnd.Set(colorEnd)

	particleMat := material.NewParticleMaterial()
	particleMat.ColorStart.Set(particlesStart)
	particleMat.PixelRatio.Set(r.PixelRatio())
	bw, bh := r.DrawingBufferSize()
	particleMat.Resolution.Set([2]float32{float32(bw), float32(bh)})

	vertices, indices := geometry.NewSphere(cfg.SphereRadius, cfg.SphereWidthSegments, cfg.SphereHeightSegments)
	sphere := model.NewModel(
		model.WithName("medusa"),
		model.WithMaterial(medusaMat),
		model.WithMesh(vertices, indices),
	)

	field := geometry.NewParticleField(cfg.ParticleCount, rng)
	particles := model.NewModel(
		model.WithName("particles"),
		model.WithMaterial(particleMat),
		model.WithInstances(field.Instances(), cfg.ParticleVertices),
	)

	var sceneOpts []scene.SceneBuilderOption
	if cfg.MarshalWorkers > 0 {
		sceneOpts = append(sceneOpts, scene.WithMarshalWorkers(cfg.MarshalWorkers))
	}
	s := scene.NewScene("medusa", cam, r, sceneOpts...)

	shaders := loadShaders()
	if err := s.Add(sphere, shaders.medusaVertex, shaders.medusaFragment, pipeline.WithCullMode(wgpu.CullModeBack)); err != nil {
		return nil, fmt.Errorf("build scene: sphere: %w", err)
	}
	if cfg.ParticleCount > 0 {
		if err := s.Add(particles, shaders.particlesVertex, shaders.particlesFragment); err != nil {
			return nil, fmt.Errorf("build scene: particles: %w", err)
		}
	}

	return &Scene{
		Scene:            s,
		Sphere:           sphere,
		Particles:        particles,
		MedusaMaterial:   medusaMat,
		ParticleMaterial: particleMat,
	}, nil
}

// NewCamera creates the scene camera and its damped orbit controller around the origin.
//
// Parameters:
//   - cfg: the camera constants
//   - width, height: the initial viewport size, for the aspect ratio
//
// Returns:
//   - camera.Camera: the camera
func NewCamera(cfg *Config, width, height int) camera.Camera {
	p := cfg.CameraPosition
	ctrl := camera.NewCameraController(
		camera.WithTarget(0, 0, 0),
		camera.WithPosition(p[0], p[1], p[2]),
		camera.WithDamping(cfg.DampingFactor > 0, cfg.DampingFactor),
	)
	opts := []camera.CameraBuilderOption{
		camera.WithFov(mgl32.DegToRad(cfg.CameraFov)),
		camera.WithNear(cfg.CameraNear),
		camera.WithFar(cfg.CameraFar),
		camera.WithController(ctrl),
	}
	if width > 0 && height > 0 {
		opts = append(opts, camera.WithAspect(float32(width)/float32(height)))
	}
	return camera.NewCamera(opts...)
}
