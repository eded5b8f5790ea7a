package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix marks a WGSL line comment as a pre-processor directive.
const annotationPrefix = "@medusa:"

// AnnotationType identifies the kind of pre-processor directive found in a WGSL source.
type AnnotationType string

const (
	// annotationTypeInclude splices a registered struct definition into the source.
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup expands into a full @group/@binding variable declaration.
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider declares which engine object supplies the bind group at a given slot.
	// It produces no WGSL; the scene reads it back through Shader.Declarations.
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation is one parsed pre-processor directive.
type Annotation struct {
	// Type is the directive kind.
	Type AnnotationType

	// Args holds the directive's arguments after the type keyword.
	Args []AnnotationArg

	// Line is the 1-based source line the directive was found on.
	Line int

	// Group is the bind group index for group and provider directives, nil otherwise.
	Group *int

	// Binding is the binding index for group and provider directives, nil otherwise.
	Binding *int
}

// AnnotationArg is a single directive argument.
type AnnotationArg string

// Struct types that can be included or bound.
const (
	// AnnotationArgCamera is the CameraUniform struct.
	AnnotationArgCamera AnnotationArg = "camera"

	// annotationArgVertex is the per-vertex mesh input struct.
	annotationArgVertex AnnotationArg = "vertex"

	// annotationArgParticleInstance is the per-instance particle input struct.
	annotationArgParticleInstance AnnotationArg = "particle_instance"

	// AnnotationArgMedusaUniforms is the medusa material's uniform block.
	AnnotationArgMedusaUniforms AnnotationArg = "medusa_uniforms"

	// AnnotationArgParticleUniforms is the particle material's uniform block.
	AnnotationArgParticleUniforms AnnotationArg = "particle_uniforms"
)

// Address spaces for group directives.
const (
	annotationArgStorageTypeUniform AnnotationArg = "storage_uniform"

	annotationArgStorageTypeRead AnnotationArg = "storage_read"
)

// Provider identities.
const (
	// AnnotationArgMaterial marks a bind group supplied by the model's material.
	AnnotationArgMaterial AnnotationArg = "material"
)

var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	annotationArgVertex,
	annotationArgParticleInstance,
	AnnotationArgMedusaUniforms,
	AnnotationArgParticleUniforms,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

var validProviderIdentities = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgMaterial,
}

// parseAnnotation parses a single source line. Lines that carry no directive return (nil, nil).
//
// Parameters:
//   - line: the raw source line
//   - lineNum: the 1-based line number, used in error messages
//
// Returns:
//   - *Annotation: the parsed directive, or nil when the line has none
//   - error: an error describing a malformed directive
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "//") {
		return nil, nil
	}
	_, after, ok := strings.Cut(trimmed, annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @medusa annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @medusa include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @medusa include annotation", lineNum, args[1])
		}
		return &Annotation{
			Type: annotationTypeInclude,
			Args: []AnnotationArg{AnnotationArg(args[1])},
			Line: lineNum,
		}, nil
	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @medusa group annotation requires group, binding, address space, variable name and struct type", lineNum)
		}
		group, binding, err := parseSlot(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @medusa group annotation", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @medusa group annotation", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil
	case AnnotationTypeProvider:
		if len(args) != 4 {
			return nil, fmt.Errorf("line %d: @medusa provider annotation requires group, binding and provider identity", lineNum)
		}
		group, binding, err := parseSlot(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @medusa provider annotation", lineNum, args[3])
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    []AnnotationArg{AnnotationArg(args[3])},
			Line:    lineNum,
			Group:   &group,
			Binding: &binding,
		}, nil
	default:
		return nil, fmt.Errorf("line %d: unknown @medusa annotation type %q", lineNum, args[0])
	}
}

func parseSlot(groupArg, bindingArg string, lineNum int) (int, int, error) {
	group, err := strconv.Atoi(groupArg)
	if err != nil || group < 0 {
		return 0, 0, fmt.Errorf("line %d: invalid group number %q", lineNum, groupArg)
	}
	binding, err := strconv.Atoi(bindingArg)
	if err != nil || binding < 0 {
		return 0, 0, fmt.Errorf("line %d: invalid binding number %q", lineNum, bindingArg)
	}
	return group, binding, nil
}
