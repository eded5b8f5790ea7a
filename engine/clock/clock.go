package clock

import (
	"sync"
	"time"
)

// Clock measures elapsed seconds since it was created. It is read once per frame through
// Tick; Elapsed and Delta then return that frame's values until the next Tick.
// Elapsed never decreases, even if the underlying time source steps backwards.
// It cannot be paused or seeked.
type Clock interface {
	// Tick samples the time source and advances the clock.
	//
	// Returns:
	//   - elapsed: seconds since the clock was created
	//   - delta: seconds since the previous Tick (or since creation for the first)
	Tick() (elapsed, delta float32)

	// Elapsed returns the elapsed seconds recorded by the last Tick.
	Elapsed() float32

	// Delta returns the seconds between the last two Ticks.
	Delta() float32
}

type clock struct {
	mu *sync.Mutex

	now   func() time.Time
	start time.Time

	elapsed float32
	delta   float32
}

var _ Clock = &clock{}

// New creates a Clock started at the current time of its time source.
//
// Parameters:
//   - options: a variadic list of ClockOption functions
//
// Returns:
//   - Clock: the started clock
func New(options ...ClockOption) Clock {
	c := &clock{
		mu:  &sync.Mutex{},
		now: time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	c.start = c.now()
	return c
}

func (c *clock) Tick() (float32, float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := float32(c.now().Sub(c.start).Seconds())
	if elapsed < c.elapsed {
		elapsed = c.elapsed
	}
	c.delta = elapsed - c.elapsed
	c.elapsed = elapsed
	return c.elapsed, c.delta
}

func (c *clock) Elapsed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

func (c *clock) Delta() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delta
}
