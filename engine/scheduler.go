package engine

import (
	"context"
	"errors"
	"time"

	"github.com/Carmen-Shannon/medusa/engine/window"
)

var (
	// ErrWindowClosed is returned by a FrameScheduler once its window has been closed.
	// Engine.Run treats it as normal termination.
	ErrWindowClosed = errors.New("window closed")

	// ErrSchedulerDone is returned by a FrameScheduler that has no frames left to give.
	// Engine.Run treats it as normal termination.
	ErrSchedulerDone = errors.New("scheduler done")
)

// FrameScheduler decides when the engine may run its next frame. It replaces a browser's
// requestAnimationFrame: the engine asks for a frame, renders it, and asks again.
type FrameScheduler interface {
	// NextFrame blocks until the next frame may run.
	//
	// Parameters:
	//   - ctx: cancels the wait
	//
	// Returns:
	//   - error: ctx.Err() on cancellation, ErrWindowClosed or ErrSchedulerDone on normal
	//     termination, or any other error to abort the run
	NextFrame(ctx context.Context) error
}

// windowScheduler paces frames by the window's event loop. Frame pacing itself comes from
// the renderer's present mode: with VSync, Present blocks until the next vertical blank.
type windowScheduler struct {
	win window.Window
}

// NewWindowScheduler creates a scheduler that polls window events before every frame.
// Input and resize callbacks therefore fire on the engine's goroutine.
//
// Parameters:
//   - win: the window to poll
//
// Returns:
//   - FrameScheduler: the scheduler
func NewWindowScheduler(win window.Window) FrameScheduler {
	return &windowScheduler{win: win}
}

func (s *windowScheduler) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.win.PollEvents() {
		return ErrWindowClosed
	}
	return nil
}

// tickerScheduler caps the frame rate, then defers to an optional inner scheduler.
type tickerScheduler struct {
	period time.Duration
	next   time.Time
	inner  FrameScheduler
}

// NewTickerScheduler creates a scheduler that releases at most fps frames per second.
// When inner is non-nil it is consulted after every wait, typically a window scheduler so
// events are still polled.
//
// Parameters:
//   - fps: maximum frames per second (values <= 0 are treated as 60)
//   - inner: an optional scheduler to chain
//
// Returns:
//   - FrameScheduler: the scheduler
func NewTickerScheduler(fps float64, inner FrameScheduler) FrameScheduler {
	if fps <= 0 {
		fps = 60
	}
	return &tickerScheduler{
		period: time.Duration(float64(time.Second) / fps),
		inner:  inner,
	}
}

func (s *tickerScheduler) NextFrame(ctx context.Context) error {
	now := time.Now()
	if wait := s.next.Sub(now); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		now = time.Now()
	} else if err := ctx.Err(); err != nil {
		return err
	}

	// Late frames reset the cadence instead of bursting to catch up.
	s.next = s.next.Add(s.period)
	if s.next.Before(now) {
		s.next = now.Add(s.period)
	}

	if s.inner != nil {
		return s.inner.NextFrame(ctx)
	}
	return nil
}

// stepScheduler releases a fixed number of frames without waiting.
type stepScheduler struct {
	remaining int
}

// NewStepScheduler creates a synchronous scheduler that releases exactly n frames and then
// returns ErrSchedulerDone. Intended for tests and headless runs.
//
// Parameters:
//   - n: the number of frames to release
//
// Returns:
//   - FrameScheduler: the scheduler
func NewStepScheduler(n int) FrameScheduler {
	return &stepScheduler{remaining: max(n, 0)}
}

func (s *stepScheduler) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.remaining == 0 {
		return ErrSchedulerDone
	}
	s.remaining--
	return nil
}
