package medusa

import (
	_ "embed"
	"sync"

	"github.com/Carmen-Shannon/medusa/engine/renderer/shader"
)

//go:embed shaders/medusa_vertex.wgsl
var medusaVertexSource string

//go:embed shaders/medusa_fragment.wgsl
var medusaFragmentSource string

//go:embed shaders/particles_vertex.wgsl
var particlesVertexSource string

//go:embed shaders/particles_fragment.wgsl
var particlesFragmentSource string

// shaderSet holds both parsed shader pairs.
type shaderSet struct {
	medusaVertex      shader.Shader
	medusaFragment    shader.Shader
	particlesVertex   shader.Shader
	particlesFragment shader.Shader
}

// loadShaders parses the embedded sources once per process. A malformed source panics.
var loadShaders = sync.OnceValue(func() *shaderSet {
	return &shaderSet{
		medusaVertex:      shader.NewShaderFromSource("medusa_vertex", shader.ShaderTypeVertex, medusaVertexSource),
		medusaFragment:    shader.NewShaderFromSource("medusa_fragment", shader.ShaderTypeFragment, medusaFragmentSource),
		particlesVertex:   shader.NewShaderFromSource("particles_vertex", shader.ShaderTypeVertex, particlesVertexSource),
		particlesFragment: shader.NewShaderFromSource("particles_fragment", shader.ShaderTypeFragment, particlesFragmentSource),
	}
})
