package clock

import "time"

// ClockOption is a functional option applied to a clock during construction via New.
type ClockOption func(*clock)

// WithNow replaces the time source, typically with a fake in tests.
//
// Parameters:
//   - now: function returning the current time
//
// Returns:
//   - ClockOption: option function to apply
func WithNow(now func() time.Time) ClockOption {
	return func(c *clock) {
		if now != nil {
			c.now = now
		}
	}
}
