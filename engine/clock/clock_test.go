package clock

import (
	"testing"
	"time"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestTickAdvances(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := New(WithNow(ft.now))

	tcs := []struct {
		step        time.Duration
		wantElapsed float32
		wantDelta   float32
	}{
		{0, 0, 0},
		{500 * time.Millisecond, 0.5, 0.5},
		{250 * time.Millisecond, 0.75, 0.25},
		{2 * time.Second, 2.75, 2},
	}
	for i, tc := range tcs {
		ft.advance(tc.step)
		elapsed, delta := c.Tick()
		if elapsed != tc.wantElapsed || delta != tc.wantDelta {
			t.Fatalf("tick %d=(%v, %v); want (%v, %v)", i, elapsed, delta, tc.wantElapsed, tc.wantDelta)
		}
		if c.Elapsed() != elapsed || c.Delta() != delta {
			t.Fatalf("tick %d: Elapsed/Delta=(%v, %v); want (%v, %v)", i, c.Elapsed(), c.Delta(), elapsed, delta)
		}
	}
}

func TestElapsedNeverDecreases(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := New(WithNow(ft.now))

	ft.advance(time.Second)
	c.Tick()
	ft.advance(-300 * time.Millisecond)
	elapsed, delta := c.Tick()
	if elapsed != 1 || delta != 0 {
		t.Fatalf("Tick() after backwards step=(%v, %v); want (1, 0)", elapsed, delta)
	}

	prev := c.Elapsed()
	for range 50 {
		ft.advance(16 * time.Millisecond)
		cur, _ := c.Tick()
		if cur < prev {
			t.Fatalf("Elapsed went from %v to %v", prev, cur)
		}
		prev = cur
	}
}

func TestRealClock(t *testing.T) {
	c := New()
	a, _ := c.Tick()
	b, _ := c.Tick()
	if a < 0 || b < a {
		t.Fatalf("real clock ticks=(%v, %v); want non-negative and non-decreasing", a, b)
	}
}
