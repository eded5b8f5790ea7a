package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/medusa/engine/clock"
	"github.com/Carmen-Shannon/medusa/engine/profiler"
	"github.com/Carmen-Shannon/medusa/engine/scene"
	"github.com/Carmen-Shannon/medusa/engine/window"
)

// engine implements the Engine interface.
// A single goroutine, the one calling Run, owns every frame.
type engine struct {
	mu *sync.Mutex

	running bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window    window.Window
	scheduler FrameScheduler
	clock     clock.Clock

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(elapsed, deltaTime float32)
	resizeCallback func(width, height int, pixelRatio float32)

	// posted holds tasks queued by Post from other goroutines, drained at the start of a frame
	posted []func()

	scenes map[int]scene.Scene
	frame  uint64
}

// Engine is the main entry point for the engine.
// It owns the frame loop: every frame it drains posted tasks, runs the tick callback, uploads
// scene uniforms and records the scenes' draw calls, in that order. Uniform updates made by
// the tick callback are therefore always visible to the frame that follows them.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil for headless engines
	Window() window.Window

	// Clock returns the clock read once per frame.
	//
	// Returns:
	//   - clock.Clock: the engine clock
	Clock() clock.Clock

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickCallback registers the function called once per frame before any GPU work.
	// Use this for uniform updates, camera damping and animation.
	//
	// Parameters:
	//   - callback: function receiving the clock's elapsed and delta seconds
	SetTickCallback(callback func(elapsed, deltaTime float32))

	// SetResizeCallback replaces the default window resize handling, which resizes every
	// scene's renderer and sets every scene camera's aspect ratio.
	//
	// Parameters:
	//   - callback: function receiving the new size in window units and the pixel ratio
	SetResizeCallback(callback func(width, height int, pixelRatio float32))

	// AddScene registers a scene at the given z-index key.
	// Scenes are rendered in ascending key order during the render loop.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Post queues a task to run on the frame loop goroutine at the start of the next frame.
	// Safe to call from any goroutine.
	//
	// Parameters:
	//   - task: the function to run
	Post(task func())

	// Run drives frames until the context is cancelled, the scheduler reports the window
	// closed or exhausted, or Quit is called; all of these return nil. Other scheduler
	// errors, draw errors and panics inside a frame are returned.
	//
	// Parameters:
	//   - ctx: cancels the run
	//
	// Returns:
	//   - error: the error that stopped the loop, nil on normal termination
	Run(ctx context.Context) error

	// Quit stops Run after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Without WithScheduler the engine paces frames by its window, or panics when it has none.
//
// Parameters:
//   - options: functional options for engine configuration (window, scheduler, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		quitChannel:      make(chan struct{}),
		scenes:           make(map[int]scene.Scene),
		running:          false,
		profilingEnabled: false,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.scheduler == nil {
		if e.window == nil {
			panic("engine: NewEngine requires WithWindow or WithScheduler")
		}
		e.scheduler = NewWindowScheduler(e.window)
	}
	if e.clock == nil {
		e.clock = clock.New()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.handleResize)
	}

	return e
}

// handleResize forwards a window resize to the registered callback or applies the default.
func (e *engine) handleResize(width, height int, pixelRatio float32) {
	if e.resizeCallback != nil {
		e.resizeCallback(width, height, pixelRatio)
		return
	}
	if width <= 0 || height <= 0 {
		return
	}
	for _, s := range e.scenes {
		if r := s.Renderer(); r != nil {
			r.SetSize(width, height)
			r.SetPixelRatio(pixelRatio)
		}
		if c := s.Camera(); c != nil {
			c.SetAspect(float32(width) / float32(height))
		}
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Clock() clock.Clock {
	return e.clock
}

func (e *engine) Run(ctx context.Context) error {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return errors.New("engine is already running")
	}
	e.running = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	for {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}

		if err := e.scheduler.NextFrame(ctx); err != nil {
			switch {
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
				errors.Is(err, ErrWindowClosed), errors.Is(err, ErrSchedulerDone):
				return nil
			default:
				return fmt.Errorf("frame scheduler: %w", err)
			}
		}

		if err := e.step(); err != nil {
			return err
		}
	}
}

// step renders one frame. A panic inside the frame is recovered and returned as an error so
// the caller can shut the window and GPU down cleanly.
func (e *engine) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] frame %d recovered from panic: %v", e.frame, r)
			err = fmt.Errorf("frame %d panicked: %v", e.frame, r)
		}
	}()
	e.frame++

	e.mu.Lock()
	tasks := e.posted
	e.posted = nil
	e.mu.Unlock()
	for _, task := range tasks {
		task()
	}

	elapsed, dt := e.clock.Tick()
	if e.tickCallback != nil {
		e.tickCallback(elapsed, dt)
	}

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	if len(keys) > 0 {
		for _, k := range keys {
			e.scenes[k].PrepareFrame()
		}

		// All scenes share the first scene's renderer for the frame and are drawn
		// within a single render pass.
		frameRenderer := e.scenes[keys[0]].Renderer()
		if err := frameRenderer.BeginFrame(); err == nil {
			var drawErr error
			for _, k := range keys {
				if drawErr = e.scenes[k].DrawCalls(); drawErr != nil {
					break
				}
			}
			frameRenderer.EndFrame()
			if drawErr != nil {
				return drawErr
			}
			frameRenderer.Present()
		}
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
	return nil
}

// Quit signals Run to return after the current frame.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Post(task func()) {
	if task == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.posted = append(e.posted, task)
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickCallback registers the function called each frame.
func (e *engine) SetTickCallback(callback func(elapsed, deltaTime float32)) {
	e.tickCallback = callback
}

// SetResizeCallback registers the function called on window resize.
func (e *engine) SetResizeCallback(callback func(width, height int, pixelRatio float32)) {
	e.resizeCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}
