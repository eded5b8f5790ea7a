package model

import (
	"github.com/Carmen-Shannon/medusa/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMaterial is an option builder that sets the material shading the Model.
//
// Parameters:
//   - mat: the material to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the material option to a model
func WithMaterial(mat material.Material) ModelBuilderOption {
	return func(m *model) {
		m.material = mat
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider for mesh GPU resources.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh provider option to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}

// WithMesh is an option builder that sets an indexed triangle mesh.
//
// Parameters:
//   - vertices: the mesh vertices
//   - indices: the triangle-list indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh to a model
func WithMesh(vertices []GPUVertex, indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = MarshalVertices(vertices)
		m.indexData = MarshalIndices(indices)
		m.indexCount = len(indices)
		m.vertexCount = len(vertices)
	}
}

// WithInstances is an option builder for non-indexed instanced drawing: the particle records
// fill vertex buffer slot 0 with instance step mode and each instance draws verticesPerInstance
// vertices generated by the shader.
//
// Parameters:
//   - particles: the per-instance records
//   - verticesPerInstance: vertices drawn for each instance (6 for a two-triangle quad)
//
// Returns:
//   - ModelBuilderOption: a function that applies the instance data to a model
func WithInstances(particles []GPUParticle, verticesPerInstance int) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = MarshalParticles(particles)
		m.indexData = nil
		m.indexCount = 0
		m.vertexCount = verticesPerInstance
		m.instanceCount = len(particles)
	}
}

// WithVertexData is an option builder that sets the raw vertex data for this model's mesh.
//
// Parameters:
//   - data: the vertex data to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the vertex data option to a model
func WithVertexData(data []byte) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = data
	}
}

// WithIndexData is an option builder that sets the raw index data for this model's mesh.
//
// Parameters:
//   - data: the index data to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the index data option to a model
func WithIndexData(data []byte) ModelBuilderOption {
	return func(m *model) {
		m.indexData = data
	}
}

// WithIndexCount is an option builder that sets the number of indices in the model's mesh.
//
// Parameters:
//   - count: the index count to set
//
// Returns:
//   - ModelBuilderOption: a function that applies the index count option to a model
func WithIndexCount(count int) ModelBuilderOption {
	return func(m *model) {
		m.indexCount = count
	}
}

// WithVertexCount is an option builder that sets the per-instance vertex count of a non-indexed draw.
func WithVertexCount(count int) ModelBuilderOption {
	return func(m *model) {
		m.vertexCount = count
	}
}

// WithInstanceCount is an option builder that sets the number of instances drawn.
// Values below 1 are ignored.
func WithInstanceCount(count int) ModelBuilderOption {
	return func(m *model) {
		if count >= 1 {
			m.instanceCount = count
		}
	}
}
