package bind_group_provider

// BindGroupProviderOption is a functional option applied to a provider during construction via NewBindGroupProvider.
type BindGroupProviderOption func(*bindGroupProvider)

// WithIndexCount presets the number of indices an indexed mesh draws.
//
// Parameters:
//   - count: the index count
//
// Returns:
//   - BindGroupProviderOption: a function that applies the index count to a provider
func WithIndexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.indexCount = count
	}
}

// WithVertexCount presets the number of vertices a non-indexed mesh draws per instance.
//
// Parameters:
//   - count: the vertex count
//
// Returns:
//   - BindGroupProviderOption: a function that applies the vertex count to a provider
func WithVertexCount(count int) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.vertexCount = count
	}
}
