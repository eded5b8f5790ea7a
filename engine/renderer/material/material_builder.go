package material

import (
	"github.com/Carmen-Shannon/medusa/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a functional option used to configure a Material during construction.
type MaterialBuilderOption func(*material)

// WithName sets the name of the material. The pipeline key defaults to the name.
//
// Parameters:
//   - name: the name of the material
//
// Returns:
//   - MaterialBuilderOption: a function that sets the name of the material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		if m.pipelineKey == m.name {
			m.pipelineKey = name
		}
		m.name = name
	}
}

// WithPipelineKey sets the render pipeline key this material will be drawn with.
//
// Parameters:
//   - key: the pipeline key
//
// Returns:
//   - MaterialBuilderOption: a function that sets the pipeline key of the material
func WithPipelineKey(key string) MaterialBuilderOption {
	return func(m *material) {
		m.pipelineKey = key
	}
}

// WithBindGroupProvider sets the provider that holds the material's uniform buffer.
//
// Parameters:
//   - provider: the provider
//
// Returns:
//   - MaterialBuilderOption: a function that sets the material's bind group provider
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}

// WithRenderState overrides the material's default blend and depth state.
//
// Parameters:
//   - state: the render state
//
// Returns:
//   - MaterialBuilderOption: a function that sets the material's render state
func WithRenderState(state RenderState) MaterialBuilderOption {
	return func(m *material) {
		m.renderState = state
	}
}
