package engine

import (
	"github.com/Carmen-Shannon/medusa/engine/clock"
	"github.com/Carmen-Shannon/medusa/engine/profiler"
	"github.com/Carmen-Shannon/medusa/engine/scene"
	"github.com/Carmen-Shannon/medusa/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
//
// Parameters:
//   - p: the profiler ticked once per frame while profiling is enabled
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window the engine polls and whose resize events it handles.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScheduler sets the frame scheduler. Defaults to a window scheduler over the engine's window.
//
// Parameters:
//   - s: the frame scheduler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScheduler(s FrameScheduler) EngineBuilderOption {
	return func(e *engine) {
		e.scheduler = s
	}
}

// WithClock sets the clock read once per frame. Defaults to a real-time clock.
//
// Parameters:
//   - c: the clock
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(c clock.Clock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
// Scenes are rendered in ascending key order during the render loop.
//
// Parameters:
//   - key: the z-index determining render order (lower renders first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithTickCallback registers the per-frame tick callback during engine construction.
//
// Parameters:
//   - callback: function receiving the clock's elapsed and delta seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickCallback(callback func(elapsed, deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.tickCallback = callback
	}
}
