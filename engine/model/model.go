package model

import (
	"github.com/Carmen-Shannon/medusa/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	material              material.Material
	meshProvider          bind_group_provider.BindGroupProvider
	vertexData, indexData []byte
	indexCount            int
	vertexCount           int
	instanceCount         int
}

// Model defines the interface for a renderable mesh.
// A Model pairs raw vertex/index bytes with the Material that shades them and a
// BindGroupProvider that receives the GPU vertex and index buffers once the scene uploads them.
// Indexed models draw IndexCount indices; non-indexed models draw VertexCount vertices,
// which lets instanced billboards generate their corners from the vertex index alone.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Material retrieves the material used to shade this model.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the raw bytes bound to vertex buffer slot 0. For instanced models this
	// is the per-instance data.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index data for this model's mesh, or nil for non-indexed draws.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// VertexCount returns the number of vertices drawn per instance by a non-indexed draw.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// InstanceCount returns the number of instances drawn. Always at least 1.
	//
	// Returns:
	//   - int: the instance count
	InstanceCount() int

	// SetMaterial replaces the material used to shade this model.
	//
	// Parameters:
	//   - mat: the material to set
	SetMaterial(mat material.Material)

	// SetVertexData sets the raw vertex data for this model's mesh.
	//
	// Parameters:
	//   - data: the vertex data to set
	SetVertexData(data []byte)

	// SetIndexData sets the raw index data for this model's mesh.
	//
	// Parameters:
	//   - data: the index data to set
	SetIndexData(data []byte)

	// SetIndexCount sets the number of indices in the model's mesh.
	//
	// Parameters:
	//   - count: the index count to set
	SetIndexCount(count int)
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// A mesh provider labelled "<name> Mesh" is created when none is supplied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{instanceCount: 1}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name + " Mesh")
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Material() material.Material {
	return m.material
}

func (m *model) SetMaterial(mat material.Material) {
	m.material = mat
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) SetVertexData(data []byte) {
	m.vertexData = data
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) SetIndexData(data []byte) {
	m.indexData = data
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) SetIndexCount(count int) {
	m.indexCount = count
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) InstanceCount() int {
	return m.instanceCount
}
