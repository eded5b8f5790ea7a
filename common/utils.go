package common

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// CapPixelRatio limits a device pixel ratio to at most 2. Ratios below 1 and NaN
// are treated as 1 so a misreporting platform never shrinks the drawing buffer below the window.
//
// Parameters:
//   - ratio: the device pixel ratio reported by the platform
//
// Returns:
//   - float32: the ratio to render with
func CapPixelRatio(ratio float32) float32 {
	switch {
	case ratio != ratio: // NaN
		return 1
	case ratio < 1:
		return 1
	case ratio > 2:
		return 2
	}
	return ratio
}
