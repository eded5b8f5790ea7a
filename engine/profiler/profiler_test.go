package profiler

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestTickReportsEachInterval(t *testing.T) {
	now := time.Unix(0, 0)
	var lines []string
	p := NewProfiler(
		WithNow(func() time.Time { return now }),
		WithLogf(func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }),
		WithoutMemStats(),
	)

	var reports int
	for range 130 {
		now = now.Add(time.Second / 60)
		if p.Tick() {
			reports++
		}
	}
	if reports != 2 || len(lines) != 2 {
		t.Fatalf("reports=%d lines=%d; want 2 and 2", reports, len(lines))
	}
	if fps := p.FPS(); fps < 59.9 || fps > 60.1 {
		t.Fatalf("FPS()=%v; want 60", fps)
	}
	if !strings.HasPrefix(lines[0], "[Profiler] FPS: 60.00") {
		t.Fatalf("report=%q; want [Profiler] FPS: 60.00 prefix", lines[0])
	}
}

func TestTickWithMemStats(t *testing.T) {
	now := time.Unix(0, 0)
	var lines []string
	p := NewProfiler(
		WithNow(func() time.Time { return now }),
		WithUpdateInterval(100*time.Millisecond),
		WithLogf(func(format string, args ...any) { lines = append(lines, fmt.Sprintf(format, args...)) }),
	)
	if p.Tick() {
		t.Fatalf("Tick() before interval reported")
	}
	now = now.Add(200 * time.Millisecond)
	if !p.Tick() {
		t.Fatalf("Tick() after interval did not report")
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "Heap:") {
		t.Fatalf("report=%v; want one line with heap stats", lines)
	}
}
