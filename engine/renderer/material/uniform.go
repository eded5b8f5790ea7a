package material

// Uniform is a named, typed value slot that a shader reads. Materials own their uniforms and
// expose them as fields so panel bindings and the frame tick can hold a direct reference to the
// exact slot they drive.
type Uniform[T any] struct {
	name  string
	value T
}

// NewUniform creates a uniform slot with an initial value.
//
// Parameters:
//   - name: the uniform's shader-facing name
//   - value: the initial value
//
// Returns:
//   - *Uniform[T]: the new slot
func NewUniform[T any](name string, value T) *Uniform[T] {
	return &Uniform[T]{name: name, value: value}
}

// Name returns the uniform's shader-facing name.
func (u *Uniform[T]) Name() string {
	return u.name
}

// Value returns the current value.
func (u *Uniform[T]) Value() T {
	return u.value
}

// Set overwrites the value in place.
func (u *Uniform[T]) Set(v T) {
	u.value = v
}
