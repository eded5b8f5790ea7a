package renderer

import (
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/medusa/common"
	"github.com/Carmen-Shannon/medusa/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/medusa/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/medusa/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	pixelRatio    float32
	clearColor    common.Color

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	pendingMSAA          *MSAASampleCount
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined and idiomatic flow.
// The Renderer manages a cache of pipelines and the size of the drawing buffer, and implements a
// backend which allows for multiple backend API implementations to exist.
//
// The drawing buffer is Size() scaled by PixelRatio(): the window size is measured in window units
// and the surface is configured in device pixels.
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key.
	// If the Pipeline does not exist, this will return nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key, or nil if not found
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines registers one or more pipelines by creating the corresponding GPU
	// render pipeline objects via the backend, then caching them by PipelineKey.
	// Pipelines whose keys are already registered are skipped to avoid duplicate GPU resource creation.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// SetSize sets the output size in window units and reconfigures the surface to the drawing
	// buffer size. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: the new width in window units
	//   - height: the new height in window units
	SetSize(width, height int)

	// Size returns the output size in window units.
	//
	// Returns:
	//   - width, height: the output size
	Size() (width, height int)

	// SetPixelRatio sets the device pixel ratio, capped to [1, 2], and reconfigures the surface.
	//
	// Parameters:
	//   - ratio: device pixels per window unit
	SetPixelRatio(ratio float32)

	// PixelRatio returns the capped device pixel ratio in use.
	//
	// Returns:
	//   - float32: the pixel ratio
	PixelRatio() float32

	// DrawingBufferSize returns the surface size in device pixels.
	//
	// Returns:
	//   - width, height: Size() scaled by PixelRatio(), rounded
	DrawingBufferSize() (width, height int)

	// SetClearColor sets the color every frame is cleared to.
	//
	// Parameters:
	//   - color: the sRGB clear color
	SetClearColor(color common.Color)

	// ClearColor returns the current clear color.
	//
	// Returns:
	//   - common.Color: the sRGB clear color
	ClearColor() common.Color

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// InitMeshBuffers creates GPU vertex and index buffers from raw byte data and stores them
	// on the given BindGroupProvider for later use in draw calls. With empty indexData the
	// provider is drawn non-indexed using vertexCount.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created buffers on
	//   - vertexData: the raw vertex (or per-instance) data bytes to upload to the GPU
	//   - indexData: the raw index data bytes to upload to the GPU, may be empty
	//   - indexCount: the number of indices, used for indexed draw calls
	//   - vertexCount: the number of vertices per instance, used for non-indexed draw calls
	//
	// Returns:
	//   - error: an error if buffer creation fails
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount, vertexCount int) error

	// InitBindGroup creates GPU buffers and a bind group from a layout descriptor and stores them
	// on the given BindGroupProvider. Each buffer is sized from the entry's MinBindingSize.
	//
	// Parameters:
	//   - provider: the BindGroupProvider to store the created bind group on
	//   - descriptor: the layout descriptor defining the bind group entries
	//
	// Returns:
	//   - error: an error if bind group creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	// Each BufferWrite targets a specific buffer on a BindGroupProvider at a given binding and offset.
	//
	// Parameters:
	//   - writes: a slice of BufferWrite structs describing the data to write
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the swapchain texture and begins the main render pass, clearing it to
	// the clear color. Must be paired with EndFrame after all DrawCall invocations within a single frame.
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame() error

	// DrawCall encodes a single instanced draw command within the current render pass.
	// Multiple DrawCall invocations can be made between BeginFrame and EndFrame.
	//
	// Parameters:
	//   - pipelineKey: the unique identifier for the cached render Pipeline to use
	//   - meshProvider: the BindGroupProvider holding vertex and index buffers
	//   - instanceCount: the number of instances to draw
	//   - bindGroups: BindGroupProviders whose BindGroups are set on the render pass, in group order
	//
	// Returns:
	//   - error: an error if the pipeline is not found
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the current render pass and submits the command buffer to the GPU.
	// Does not present the surface; call Present() after EndFrame to display the frame.
	EndFrame()

	// Present presents the surface to the display and releases the swapchain texture.
	// Must be called once per frame after EndFrame.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer instance with the specified backend type, drawing into the
// surface of the given window. The initial size is the window size.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		width:         win.Width(),
		height:        win.Height(),
		pixelRatio:    1,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	msaa := MSAA4x // default
	if r.pendingMSAA != nil {
		msaa = *r.pendingMSAA
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, msaa)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	r.backend.SetClearColor(toWGPUColor(r.clearColor))

	r.configure()
	return r
}

// configure pushes the drawing buffer size to the backend. Callers must not hold the mutex.
func (r *renderer) configure() {
	w, h := r.DrawingBufferSize()
	if w <= 0 || h <= 0 {
		return
	}
	r.backend.ConfigureSurface(w, h)
}

func (r *renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	changed := r.width != width || r.height != height
	r.width, r.height = width, height
	r.mu.Unlock()
	if changed {
		r.configure()
	}
}

func (r *renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPixelRatio(ratio float32) {
	ratio = common.CapPixelRatio(ratio)
	r.mu.Lock()
	changed := r.pixelRatio != ratio
	r.pixelRatio = ratio
	r.mu.Unlock()
	if changed {
		r.configure()
	}
}

func (r *renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) DrawingBufferSize() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return DrawingBufferSize(r.width, r.height, r.pixelRatio)
}

func (r *renderer) SetClearColor(color common.Color) {
	r.mu.Lock()
	r.clearColor = color
	r.mu.Unlock()
	r.backend.SetClearColor(toWGPUColor(color))
}

func (r *renderer) ClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
	r.configure()
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount, vertexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount, vertexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	return r.backend.InitBindGroup(provider, descriptor)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}

	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

// DrawingBufferSize scales a size in window units by a pixel ratio, rounding to whole device pixels.
//
// Parameters:
//   - width, height: the size in window units
//   - pixelRatio: device pixels per window unit
//
// Returns:
//   - int, int: the size in device pixels
func DrawingBufferSize(width, height int, pixelRatio float32) (int, int) {
	return int(math.Round(float64(float32(width) * pixelRatio))), int(math.Round(float64(float32(height) * pixelRatio)))
}

// toWGPUColor converts an sRGB color to the linear clear value an sRGB surface expects.
func toWGPUColor(c common.Color) wgpu.Color {
	lin := c.Linear()
	return wgpu.Color{R: float64(lin[0]), G: float64(lin[1]), B: float64(lin[2]), A: 1}
}
