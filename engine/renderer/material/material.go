package material

import (
	"github.com/Carmen-Shannon/medusa/engine/renderer/bind_group_provider"
)

// BlendMode selects how a material's fragments combine with what is already in the color target.
type BlendMode int

const (
	// BlendModeNone writes fragments opaquely.
	BlendModeNone BlendMode = iota

	// BlendModeNormal is standard non-premultiplied alpha blending.
	BlendModeNormal

	// BlendModeAdditive adds source color weighted by source alpha onto the destination.
	BlendModeAdditive
)

// RenderState holds the fixed-function state a material needs from its pipeline.
type RenderState struct {
	Blending   BlendMode
	DepthTest  bool
	DepthWrite bool
}

// material holds the state every shader material shares. Concrete materials embed it.
type material struct {
	name              string
	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
	renderState       RenderState
}

// Material defines the interface for a shader material: a pipeline key, a bind group provider for
// its uniform block, the render state its pipeline is built with, and the current uniform values.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the material name
	Name() string

	// PipelineKey retrieves the key of the render pipeline this material draws with.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// BindGroupProvider retrieves the provider holding the material's uniform buffer.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// RenderState retrieves the blend and depth state for the material's pipeline.
	//
	// Returns:
	//   - RenderState: the render state
	RenderState() RenderState

	// Uniforms snapshots every uniform value keyed by uniform name.
	//
	// Returns:
	//   - map[string]any: the current values
	Uniforms() map[string]any

	// Marshal packs the current uniform values into the GPU layout of the material's uniform block.
	//
	// Returns:
	//   - []byte: the uniform block bytes
	Marshal() []byte

	// SetPipelineKey sets the key of the render pipeline this material draws with.
	//
	// Parameters:
	//   - key: the pipeline key
	SetPipelineKey(key string)

	// SetBindGroupProvider replaces the provider holding the material's uniform buffer.
	//
	// Parameters:
	//   - provider: the provider
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

func newMaterial(name string, state RenderState, options ...MaterialBuilderOption) *material {
	m := &material{
		name:        name,
		pipelineKey: name,
		renderState: state,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider(m.name + " Material")
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) RenderState() RenderState {
	return m.renderState
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
