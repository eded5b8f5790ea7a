package scene

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/medusa/engine/camera"
	"github.com/Carmen-Shannon/medusa/engine/model"
	"github.com/Carmen-Shannon/medusa/engine/renderer"
	"github.com/Carmen-Shannon/medusa/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
	"github.com/Carmen-Shannon/medusa/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/medusa/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Scene owns an ordered list of renderable models together with the Camera and Renderer
// used to draw them. Models are drawn in the order they were added, which matters for
// additive blending with depth writes disabled.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Models returns the scene's models in draw order.
	//
	// Returns:
	//   - []model.Model: a copy of the model list
	Models() []model.Model

	// Count returns the number of models in the scene.
	Count() int

	// Add registers a model with the scene. The model's material chooses the pipeline key
	// and render state; the pipeline is created from the shader pair on first use. The model's
	// mesh buffers are uploaded and every bind group the shaders declare is resolved to a
	// provider (the camera or the model's material) and initialized on the GPU.
	//
	// Parameters:
	//   - mdl: the model to add, which must carry a Material
	//   - vertexShader: the vertex shader of the model's pipeline
	//   - fragmentShader: the fragment shader of the model's pipeline
	//   - pipelineOpts: extra pipeline options applied after the material's render state
	//
	// Returns:
	//   - error: an error if the pipeline, mesh buffers or bind groups could not be created
	Add(mdl model.Model, vertexShader, fragmentShader shader.Shader, pipelineOpts ...pipeline.PipelineBuilderOption) error

	// PrepareFrame uploads the camera uniform and the uniform block of every material.
	// Material blocks are marshaled in parallel and written in draw order with a single
	// WriteBuffers call. Must be called before BeginFrame on the renderer.
	PrepareFrame()

	// DrawCalls issues one draw call per model in insertion order.
	// Must be called within a BeginFrame/EndFrame block on the renderer.
	//
	// Returns:
	//   - error: error if a draw call fails
	DrawCalls() error
}

// ErrNoMaterial is returned by Add for a model without a material.
var ErrNoMaterial = errors.New("model has no material")

// entry is a model prepared for drawing.
type entry struct {
	mdl         model.Model
	pipelineKey string
	bindGroups  []bind_group_provider.BindGroupProvider

	// materialBinding is the binding index of the material's uniform block, -1 if the
	// shaders never bind the material
	materialBinding int
}

type scene struct {
	mu *sync.RWMutex

	name    string
	entries []*entry

	cam camera.Camera
	r   renderer.Renderer

	cameraBinding int

	// initialized remembers the layout each provider's bind group was created with so a
	// provider shared between pipelines is initialized once and stays layout compatible
	initialized map[bind_group_provider.BindGroupProvider]wgpu.BindGroupLayoutDescriptor

	// Pre-allocated slice reused each frame to avoid per-frame allocations.
	writePool []bind_group_provider.BufferWrite

	// marshalPool manages a bounded set of reusable goroutines for marshaling material
	// uniform blocks. Workers persist across frames.
	marshalPool    worker.DynamicWorkerPool
	marshalWorkers int
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene drawing through the given camera and renderer.
// NewScene panics if either is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		cam:            cam,
		r:              r,
		initialized:    make(map[bind_group_provider.BindGroupProvider]wgpu.BindGroupLayoutDescriptor),
		marshalWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the pool after options so WithMarshalWorkers can override the default.
	s.marshalPool = worker.NewDynamicWorkerPool(s.marshalWorkers, 256, 1*time.Second)

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

func (s *scene) Models() []model.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Model, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.mdl
	}
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *scene) Add(mdl model.Model, vertexShader, fragmentShader shader.Shader, pipelineOpts ...pipeline.PipelineBuilderOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	mat := mdl.Material()
	if mat == nil {
		return fmt.Errorf("scene %q: add %q: %w", s.name, mdl.Name(), ErrNoMaterial)
	}

	key := mat.PipelineKey()
	opts := append([]pipeline.PipelineBuilderOption{
		pipeline.WithVertexShader(vertexShader),
		pipeline.WithFragmentShader(fragmentShader),
		pipeline.WithRenderState(mat.RenderState()),
	}, pipelineOpts...)
	if err := s.r.RegisterPipelines(pipeline.NewPipeline(key, opts...)); err != nil {
		return fmt.Errorf("scene %q: add %q: %w", s.name, mdl.Name(), err)
	}

	if meshBGP := mdl.MeshProvider(); meshBGP.VertexBuffer() == nil {
		if err := s.r.InitMeshBuffers(meshBGP, mdl.VertexData(), mdl.IndexData(), mdl.IndexCount(), mdl.VertexCount()); err != nil {
			return fmt.Errorf("scene %q: init mesh buffers for %q: %w", s.name, mdl.Name(), err)
		}
	}

	e, err := s.resolveBindGroups(mdl, mat, vertexShader, fragmentShader)
	if err != nil {
		return fmt.Errorf("scene %q: add %q: %w", s.name, mdl.Name(), err)
	}
	e.pipelineKey = key
	s.entries = append(s.entries, e)
	return nil
}

// resolveBindGroups maps every declared bind group of the shader pair to its provider and
// initializes providers seen for the first time. Caller must hold the mutex.
func (s *scene) resolveBindGroups(mdl model.Model, mat material.Material, vertexShader, fragmentShader shader.Shader) (*entry, error) {
	merged := shader.MergeBindGroupLayouts(vertexShader.BindGroupLayoutDescriptors(), fragmentShader.BindGroupLayoutDescriptors())

	var decls []shader.Annotation
	decls = append(decls, vertexShader.Declarations()...)
	decls = append(decls, fragmentShader.Declarations()...)

	e := &entry{mdl: mdl, materialBinding: -1}
	groupProviders := make(map[int]bind_group_provider.BindGroupProvider)
	maxGroup := -1
	for _, decl := range decls {
		if decl.Group == nil {
			continue
		}
		g := *decl.Group
		maxGroup = max(maxGroup, g)

		var provider bind_group_provider.BindGroupProvider
		switch decl.Type {
		case shader.AnnotationTypeProvider:
			switch decl.Args[0] {
			case shader.AnnotationArgCamera:
				provider = s.cam.BindGroupProvider()
				s.cameraBinding = *decl.Binding
			case shader.AnnotationArgMaterial:
				provider = mat.BindGroupProvider()
				e.materialBinding = *decl.Binding
			}
		case shader.AnnotationTypeBindingGroup:
			switch decl.Args[2] {
			case shader.AnnotationArgCamera:
				provider = s.cam.BindGroupProvider()
				s.cameraBinding = *decl.Binding
			case shader.AnnotationArgMedusaUniforms, shader.AnnotationArgParticleUniforms:
				provider = mat.BindGroupProvider()
				e.materialBinding = *decl.Binding
			}
		}
		if provider == nil {
			continue
		}
		if existing, ok := groupProviders[g]; ok && existing != provider {
			return nil, fmt.Errorf("bind group %d is claimed by both %s and %s", g, existing.Label(), provider.Label())
		}
		groupProviders[g] = provider
	}

	for g := 0; g <= maxGroup; g++ {
		provider, ok := groupProviders[g]
		if !ok {
			return nil, fmt.Errorf("no provider declared for bind group %d", g)
		}
		desc := merged[g]
		if prev, done := s.initialized[provider]; done {
			if !sameLayout(prev, desc) {
				return nil, fmt.Errorf("bind group %d: %s is shared with an incompatible layout", g, provider.Label())
			}
		} else {
			if err := s.r.InitBindGroup(provider, desc); err != nil {
				return nil, fmt.Errorf("init bind group %d (%s): %w", g, provider.Label(), err)
			}
			s.initialized[provider] = desc
		}
		e.bindGroups = append(e.bindGroups, provider)
	}
	return e, nil
}

// sameLayout reports whether two layouts declare the same bindings with the same visibility.
func sameLayout(a, b wgpu.BindGroupLayoutDescriptor) bool {
	if len(a.Entries) != len(b.Entries) {
		return false
	}
	for i := range a.Entries {
		ea, eb := a.Entries[i], b.Entries[i]
		if ea.Binding != eb.Binding || ea.Visibility != eb.Visibility || ea.Buffer.Type != eb.Buffer.Type {
			return false
		}
	}
	return true
}

func (s *scene) PrepareFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()

	writes := s.writePool[:0]
	if camBGP := s.cam.BindGroupProvider(); camBGP != nil {
		uniform := s.cam.Uniform()
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: camBGP,
			Binding:  s.cameraBinding,
			Offset:   0,
			Data:     uniform.Marshal(),
		})
	}

	// Marshal every material block in parallel. A WaitGroup provides the per-frame barrier
	// since the pool's own Wait blocks until workers idle-exit.
	blocks := make([][]byte, len(s.entries))
	var wg sync.WaitGroup
	for i, e := range s.entries {
		if e.materialBinding < 0 {
			continue
		}
		wg.Add(1)
		idx, mat := i, e.mdl.Material()
		s.marshalPool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				blocks[idx] = mat.Marshal()
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, e := range s.entries {
		if blocks[i] == nil {
			continue
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: e.mdl.Material().BindGroupProvider(),
			Binding:  e.materialBinding,
			Offset:   0,
			Data:     blocks[i],
		})
	}

	if len(writes) > 0 {
		s.r.WriteBuffers(writes)
	}
	s.writePool = writes
}

func (s *scene) DrawCalls() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if err := s.r.DrawCall(e.pipelineKey, e.mdl.MeshProvider(), uint32(e.mdl.InstanceCount()), e.bindGroups); err != nil {
			return fmt.Errorf("draw call failed for %q in scene %q: %w", e.mdl.Name(), s.name, err)
		}
	}
	return nil
}
