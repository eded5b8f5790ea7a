package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/medusa/engine/camera"
	"github.com/Carmen-Shannon/medusa/engine/model"
	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
)

// registryEntry pairs a WGSL struct definition with the struct's type name.
type registryEntry struct {
	Source string
	Type   string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string
	declarations         []Annotation
}

// PreProcessor expands @medusa annotations in WGSL source so that the GPU struct definitions
// owned by the Go side (camera, vertex formats, material uniforms) live in exactly one place.
type PreProcessor interface {
	// Process expands every annotation in the source and records group and provider declarations.
	//
	// Parameters:
	//   - source: raw WGSL source containing annotations
	//
	// Returns:
	//   - string: the expanded WGSL source
	//   - error: an error for malformed or unknown annotations
	Process(source string) (string, error)

	// Declarations returns the group and provider annotations recorded by the last Process call.
	//
	// Returns:
	//   - []Annotation: the recorded declarations in source order
	Declarations() []Annotation
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with the built-in struct registry.
//
// Returns:
//   - PreProcessor: a new pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:           {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			annotationArgVertex:           {Source: model.GPUVertexSource, Type: "VertexInput"},
			annotationArgParticleInstance: {Source: model.GPUParticleInstanceSource, Type: "ParticleInstance"},
			AnnotationArgMedusaUniforms:   {Source: material.GPUMedusaUniformsSource, Type: "MedusaUniforms"},
			AnnotationArgParticleUniforms: {Source: material.GPUParticleUniformsSource, Type: "ParticleUniforms"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	included := make(map[AnnotationArg]bool)

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			if included[a.Args[0]] {
				continue
			}
			entry, ok := p.structRegistry[a.Args[0]]
			if !ok {
				return "", fmt.Errorf("line %d: unknown @medusa:include argument %q", i+1, a.Args[0])
			}
			included[a.Args[0]] = true
			out = append(out, entry.Source)
		case AnnotationTypeBindingGroup:
			addrSpace := p.addressSpaceRegistry[a.Args[0]]
			entry := p.structRegistry[a.Args[2]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;", *a.Group, *a.Binding, addrSpace, a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}
