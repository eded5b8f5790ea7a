package debug

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/Carmen-Shannon/medusa/common"
)

var (
	// ErrUnknownControl is returned for a control name the panel does not have.
	ErrUnknownControl = errors.New("unknown control")

	// ErrInvalidValue is returned when a value cannot be parsed for a control.
	ErrInvalidValue = errors.New("invalid value")

	// ErrDuplicateControl is returned when a control name is registered twice.
	ErrDuplicateControl = errors.New("duplicate control")
)

// Kind identifies how a control is edited.
type Kind int

const (
	// KindNumber is a bounded numeric slider.
	KindNumber Kind = iota

	// KindColor is a hex color picker.
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindColor:
		return "color"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Binding connects one named panel control to the value it drives. A failed Set leaves the
// target untouched.
type Binding interface {
	// Name returns the control's label.
	Name() string

	// Kind returns how the control is edited.
	Kind() Kind

	// Get formats the current value of the target.
	//
	// Returns:
	//   - string: the formatted value
	Get() string

	// Set parses a value and applies it to the target.
	//
	// Parameters:
	//   - value: the textual value, a number or a "#rrggbb" color depending on Kind
	//
	// Returns:
	//   - error: an error wrapping ErrInvalidValue when the value cannot be parsed
	Set(value string) error

	// Describe returns the control's accepted range in human-readable form.
	Describe() string
}

// NumberTarget is a float value slot, satisfied by *material.Uniform[float32].
type NumberTarget interface {
	Value() float32
	Set(v float32)
}

// NumberBinding is a slider over [Min, Max] that snaps to multiples of Step from Min.
type NumberBinding struct {
	name   string
	min    float64
	max    float64
	step   float64
	target NumberTarget
}

var _ Binding = &NumberBinding{}

// NewNumberBinding creates a slider control.
//
// Parameters:
//   - name: the control label
//   - min, max: the accepted range
//   - step: the snapping increment (values <= 0 disable snapping)
//   - target: the slot the slider drives
//
// Returns:
//   - *NumberBinding: the binding
func NewNumberBinding(name string, min, max, step float64, target NumberTarget) *NumberBinding {
	if min > max {
		min, max = max, min
	}
	return &NumberBinding{name: name, min: min, max: max, step: step, target: target}
}

func (b *NumberBinding) Name() string {
	return b.name
}

func (b *NumberBinding) Kind() Kind {
	return KindNumber
}

func (b *NumberBinding) Get() string {
	return strconv.FormatFloat(float64(b.target.Value()), 'f', -1, 32)
}

func (b *NumberBinding) Set(value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s: %q is not a number: %w", b.name, value, ErrInvalidValue)
	}
	b.target.Set(b.Snap(v))
	return nil
}

func (b *NumberBinding) Describe() string {
	return fmt.Sprintf("%g..%g step %g", b.min, b.max, b.step)
}

// Snap clamps v to the range and rounds it to the nearest step.
//
// Parameters:
//   - v: the raw value
//
// Returns:
//   - float32: the value the slider would settle on
func (b *NumberBinding) Snap(v float64) float32 {
	if b.step > 0 {
		n := math.Round((v - b.min) / b.step)
		v = b.min + n*b.step
		// Rounding to the step's precision removes drift such as 1.5000000000000002.
		if decimals := stepDecimals(b.step); decimals >= 0 {
			scale := math.Pow(10, float64(decimals))
			v = math.Round(v*scale) / scale
		}
	}
	return float32(min(max(v, b.min), b.max))
}

// Nudge moves the value by a number of steps, staying within the range.
//
// Parameters:
//   - steps: signed step count
func (b *NumberBinding) Nudge(steps int) {
	step := b.step
	if step <= 0 {
		step = (b.max - b.min) / 100
	}
	b.target.Set(b.Snap(float64(b.target.Value()) + float64(steps)*step))
}

// stepDecimals returns the number of decimals needed to represent step, or -1 beyond 9.
func stepDecimals(step float64) int {
	for d := 0; d <= 9; d++ {
		scaled := step * math.Pow(10, float64(d))
		if math.Abs(scaled-math.Round(scaled)) < 1e-9 {
			return d
		}
	}
	return -1
}

// ColorBinding is a hex color control. The normalized hex string is stored back into the
// state field it was created with, so the panel state always mirrors what is shown.
type ColorBinding struct {
	name  string
	hex   *string
	apply func(common.Color)
}

var _ Binding = &ColorBinding{}

// NewColorBinding creates a color control.
//
// Parameters:
//   - name: the control label
//   - hex: the state field holding the current "#rrggbb" string
//   - apply: receives the parsed color on every successful Set
//
// Returns:
//   - *ColorBinding: the binding
func NewColorBinding(name string, hex *string, apply func(common.Color)) *ColorBinding {
	return &ColorBinding{name: name, hex: hex, apply: apply}
}

func (b *ColorBinding) Name() string {
	return b.name
}

func (b *ColorBinding) Kind() Kind {
	return KindColor
}

func (b *ColorBinding) Get() string {
	return *b.hex
}

func (b *ColorBinding) Set(value string) error {
	c, err := common.ParseHex(value)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", b.name, ErrInvalidValue, err)
	}
	*b.hex = c.Hex()
	b.apply(c)
	return nil
}

func (b *ColorBinding) Describe() string {
	return "#rrggbb"
}
