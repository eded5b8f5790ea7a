// Package renderertest provides a GPU-free Renderer that records every call, for tests of code
// that drives a renderer.Renderer.
package renderertest

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/medusa/common"
	"github.com/Carmen-Shannon/medusa/engine/renderer"
	"github.com/Carmen-Shannon/medusa/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/medusa/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Call is one recorded renderer invocation. Arg carries the pipeline key for DrawCall and
// the provider label for InitMeshBuffers and InitBindGroup.
type Call struct {
	Method string
	Arg    string
}

// Renderer records calls instead of talking to a GPU. It is safe for concurrent use.
type Renderer struct {
	mu *sync.Mutex

	calls     []Call
	writes    []bind_group_provider.BufferWrite
	pipelines map[string]pipeline.Pipeline
	layouts   map[string]wgpu.BindGroupLayoutDescriptor

	width, height int
	pixelRatio    float32
	clearColor    common.Color
	presentMode   renderer.PresentMode

	// RegisterErr, when set, is returned by RegisterPipelines.
	RegisterErr error
	// BeginFrameErr, when set, is returned by BeginFrame.
	BeginFrameErr error
}

var _ renderer.Renderer = &Renderer{}

// New creates a recording renderer sized width x height with pixel ratio 1.
//
// Parameters:
//   - width, height: the initial size in window units
//
// Returns:
//   - *Renderer: the fake
func New(width, height int) *Renderer {
	return &Renderer{
		mu:         &sync.Mutex{},
		pipelines:  make(map[string]pipeline.Pipeline),
		layouts:    make(map[string]wgpu.BindGroupLayoutDescriptor),
		width:      width,
		height:     height,
		pixelRatio: 1,
	}
}

func (r *Renderer) record(method, arg string) {
	r.calls = append(r.calls, Call{Method: method, Arg: arg})
}

// Calls returns a copy of the recorded calls in order.
func (r *Renderer) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Methods returns the recorded method names in order.
func (r *Renderer) Methods() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Method
	}
	return out
}

// Writes returns a copy of every BufferWrite received, in order.
func (r *Renderer) Writes() []bind_group_provider.BufferWrite {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bind_group_provider.BufferWrite(nil), r.writes...)
}

// Layout returns the bind group layout initialized for the provider with the given label.
func (r *Renderer) Layout(label string) (wgpu.BindGroupLayoutDescriptor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.layouts[label]
	return d, ok
}

// PresentMode returns the last present mode set.
func (r *Renderer) PresentMode() renderer.PresentMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presentMode
}

// Reset forgets recorded calls and writes, keeping registered pipelines and size state.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.writes = nil
}

func (r *Renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelines[key]
}

func (r *Renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.RegisterErr != nil {
		return r.RegisterErr
	}
	for _, p := range pipelines {
		if _, ok := r.pipelines[p.PipelineKey()]; ok {
			continue
		}
		r.pipelines[p.PipelineKey()] = p
		r.record("RegisterPipeline", p.PipelineKey())
	}
	return nil
}

func (r *Renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.record("SetSize", fmt.Sprintf("%dx%d", width, height))
}

func (r *Renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *Renderer) SetPixelRatio(ratio float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pixelRatio = common.CapPixelRatio(ratio)
	r.record("SetPixelRatio", fmt.Sprint(r.pixelRatio))
}

func (r *Renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *Renderer) DrawingBufferSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return renderer.DrawingBufferSize(r.width, r.height, r.pixelRatio)
}

func (r *Renderer) SetClearColor(color common.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = color
	r.record("SetClearColor", color.Hex())
}

func (r *Renderer) ClearColor() common.Color {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *Renderer) SetPresentMode(mode renderer.PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
}

func (r *Renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount, vertexCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(indexData) > 0 {
		provider.SetIndexCount(indexCount)
	}
	provider.SetVertexCount(vertexCount)
	r.record("InitMeshBuffers", provider.Label())
	return nil
}

func (r *Renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.layouts[provider.Label()] = descriptor
	r.record("InitBindGroup", provider.Label())
	return nil
}

func (r *Renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, writes...)
	r.record("WriteBuffers", fmt.Sprint(len(writes)))
}

func (r *Renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.BeginFrameErr != nil {
		return r.BeginFrameErr
	}
	r.record("BeginFrame", "")
	return nil
}

func (r *Renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pipelines[pipelineKey]; !ok {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	r.record("DrawCall", pipelineKey)
	return nil
}

func (r *Renderer) EndFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("EndFrame", "")
}

func (r *Renderer) Present() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Present", "")
}
