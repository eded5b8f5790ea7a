package common

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with channels in [0, 1]. It is the value type behind every color
// uniform and the renderer clear color.
type Color struct {
	R, G, B float32
}

// ParseHex parses a "#rrggbb" or "#rgb" string into a Color.
//
// Parameters:
//   - hex: the color string, leading '#' required
//
// Returns:
//   - Color: the parsed color
//   - error: an error if the string is not a valid hex color
func ParseHex(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B)}, nil
}

// MustParseHex is ParseHex for compile-time constants; it panics on malformed input.
//
// Parameters:
//   - hex: the color string
//
// Returns:
//   - Color: the parsed color
func MustParseHex(hex string) Color {
	c, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return c.colorful().Clamped().Hex()
}

// Linear converts the color from sRGB to linear light. Shaders and clear values work in linear
// space when the surface format performs the sRGB encode on write.
func (c Color) Linear() [3]float32 {
	r, g, b := c.colorful().LinearRgb()
	return [3]float32{float32(r), float32(g), float32(b)}
}

// Vec4 returns the linear color padded with the given alpha, laid out for a vec4<f32> uniform field.
func (c Color) Vec4(alpha float32) [4]float32 {
	l := c.Linear()
	return [4]float32{l[0], l[1], l[2], alpha}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}
