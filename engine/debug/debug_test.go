package debug

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/medusa/common"
	"github.com/Carmen-Shannon/medusa/engine/renderer/material"
)

func quiet(string, ...any) {}

type fixture struct {
	panel *Panel
	width *material.Uniform[float32]
	size  *material.Uniform[float32]
	start *material.Uniform[common.Color]
	clear common.Color
	hex   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		panel: NewPanel(WithLogf(quiet)),
		width: material.NewUniform[float32]("uWidth", 1.7),
		size:  material.NewUniform[float32]("uSize", 100),
		start: material.NewUniform("uColorStart", common.MustParseHex("#0b4e69")),
		hex:   "#0b4e69",
	}
	clearHex := "#201919"
	err := f.panel.Add(
		NewNumberBinding("MedusaWidth", 1, 1.9, 0.001, f.width),
		NewColorBinding("colorStart", &f.hex, f.start.Set),
		NewNumberBinding("particlesSizes", 50, 500, 1, f.size),
		NewColorBinding("clearColor", &clearHex, func(c common.Color) { f.clear = c }),
	)
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}
	return f
}

func TestNumberSnapAndClamp(t *testing.T) {
	f := newFixture(t)

	tcs := []struct {
		name  string
		value string
		want  float32
	}{
		{"MedusaWidth", "1.5", 1.5},
		{"MedusaWidth", "1.2344", 1.234},
		{"MedusaWidth", "5", 1.9},
		{"MedusaWidth", "-2", 1},
		{"particlesSizes", "123.6", 124},
		{"particlesSizes", "10", 50},
		{"particlesSizes", "1e6", 500},
	}
	for _, tc := range tcs {
		if err := f.panel.Set(tc.name, tc.value); err != nil {
			t.Fatalf("Set(%q, %q) error: %v", tc.name, tc.value, err)
		}
		target := f.width
		if tc.name == "particlesSizes" {
			target = f.size
		}
		if got := target.Value(); got != tc.want {
			t.Fatalf("Set(%q, %q) -> %v; want %v", tc.name, tc.value, got, tc.want)
		}
	}
}

func TestWidthChangesOnlyWidth(t *testing.T) {
	f := newFixture(t)
	if err := f.panel.Set("MedusaWidth", "1.5"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if f.width.Value() != 1.5 {
		t.Fatalf("width=%v; want 1.5", f.width.Value())
	}
	if f.size.Value() != 100 || f.start.Value().Hex() != "#0b4e69" || f.hex != "#0b4e69" {
		t.Fatalf("unrelated targets changed: size=%v start=%s hex=%s", f.size.Value(), f.start.Value().Hex(), f.hex)
	}
}

func TestColorBinding(t *testing.T) {
	f := newFixture(t)

	if err := f.panel.Set("colorStart", "#FF8800"); err != nil {
		t.Fatalf("Set(colorStart) error: %v", err)
	}
	if got := f.start.Value().Hex(); got != "#ff8800" {
		t.Fatalf("colorStart uniform=%s; want #ff8800", got)
	}
	if f.hex != "#ff8800" {
		t.Fatalf("state hex=%s; want normalized #ff8800", f.hex)
	}
	if f.clear != (common.Color{}) {
		t.Fatalf("clear color changed to %+v", f.clear)
	}

	if err := f.panel.SetColor("clearColor", common.Color{R: 1}); err != nil {
		t.Fatalf("SetColor() error: %v", err)
	}
	if got, _ := f.panel.Get("clearColor"); got != "#ff0000" {
		t.Fatalf("Get(clearColor)=%s; want #ff0000", got)
	}
}

func TestInvalidInputLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)

	tcs := []struct {
		name, value string
		want        error
	}{
		{"colorStart", "not-a-color", ErrInvalidValue},
		{"colorStart", "0b4e69", ErrInvalidValue},
		{"MedusaWidth", "wide", ErrInvalidValue},
		{"MedusaWidth", "NaN", ErrInvalidValue},
		{"missing", "1", ErrUnknownControl},
	}
	for _, tc := range tcs {
		if err := f.panel.Set(tc.name, tc.value); !errors.Is(err, tc.want) {
			t.Fatalf("Set(%q, %q)=%v; want %v", tc.name, tc.value, err, tc.want)
		}
	}
	if f.hex != "#0b4e69" || f.start.Value().Hex() != "#0b4e69" || f.width.Value() != 1.7 {
		t.Fatalf("state changed after invalid input")
	}
	if err := f.panel.SetNumber("colorStart", 1); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("SetNumber(color control)=%v; want ErrInvalidValue", err)
	}
	if err := f.panel.SetColor("MedusaWidth", common.Color{}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("SetColor(number control)=%v; want ErrInvalidValue", err)
	}
}

func TestDuplicateControl(t *testing.T) {
	f := newFixture(t)
	err := f.panel.Add(NewNumberBinding("MedusaWidth", 0, 1, 0.1, f.width))
	if !errors.Is(err, ErrDuplicateControl) {
		t.Fatalf("Add(duplicate)=%v; want ErrDuplicateControl", err)
	}
	if n := len(f.panel.Controls()); n != 4 {
		t.Fatalf("len(Controls())=%d; want 4", n)
	}
}

func TestKeyboardNavigation(t *testing.T) {
	f := newFixture(t)

	if got := f.panel.Selected().Name(); got != "MedusaWidth" {
		t.Fatalf("initial selection=%s; want MedusaWidth", got)
	}
	f.panel.KeyDown(common.KeyUp)
	if got := f.width.Value(); got != 1.701 {
		t.Fatalf("width after Up=%v; want 1.701", got)
	}
	f.panel.KeyDown(common.KeyLeftShift)
	f.panel.KeyDown(common.KeyDown)
	if got := f.width.Value(); got != 1.691 {
		t.Fatalf("width after Shift-Down=%v; want 1.691", got)
	}

	// Shift-Tab wraps to the last control.
	f.panel.KeyDown(common.KeyTab)
	if got := f.panel.Selected().Name(); got != "clearColor" {
		t.Fatalf("selection after Shift-Tab=%s; want clearColor", got)
	}
	f.panel.KeyUp(common.KeyLeftShift)
	f.panel.KeyDown(common.KeyTab)
	if got := f.panel.Selected().Name(); got != "MedusaWidth" {
		t.Fatalf("selection after Tab=%s; want MedusaWidth", got)
	}
	f.panel.KeyDown(common.KeyTab)
	f.panel.KeyDown(common.KeyUp)
	if f.hex != "#0b4e69" {
		t.Fatalf("Up on a color control changed it to %s", f.hex)
	}
}

func TestTableFitsWidth(t *testing.T) {
	f := newFixture(t)
	table := f.panel.Table()
	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("table has %d lines; want 4:\n%s", len(lines), table)
	}
	if !strings.HasPrefix(lines[0], "> MedusaWidth") {
		t.Fatalf("first line=%q; want selected MedusaWidth", lines[0])
	}
	for _, l := range lines {
		if len(l) > f.panel.Width()/glyphWidth {
			t.Fatalf("line %q wider than %d columns", l, f.panel.Width()/glyphWidth)
		}
	}
}

func TestConsoleExec(t *testing.T) {
	f := newFixture(t)
	c := NewConsole(f.panel, func(fn func()) { fn() }, &strings.Builder{})

	tcs := []struct {
		line    string
		want    string
		wantErr error
	}{
		{"set MedusaWidth 1.5", "MedusaWidth = 1.5\n", nil},
		{"get MedusaWidth", "MedusaWidth = 1.5\n", nil},
		{`set colorStart "#00ff00"`, "colorStart = #00ff00\n", nil},
		{"set nope 1", "", ErrUnknownControl},
		{"set MedusaWidth abc", "", ErrInvalidValue},
		{"jump", "", ErrUnknownCommand},
		{"", "", nil},
	}
	for _, tc := range tcs {
		got, err := c.Exec(tc.line)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("Exec(%q) error=%v; want %v", tc.line, err, tc.wantErr)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("Exec(%q)=(%q, %v); want %q", tc.line, got, err, tc.want)
		}
	}
	if _, err := c.Exec(`set colorStart "unterminated`); err == nil {
		t.Fatalf("Exec(unterminated quote) error=nil")
	}
	if out, _ := c.Exec("help"); !strings.Contains(out, "set <name> <value>") {
		t.Fatalf("help output=%q", out)
	}
}

func TestConsoleRunPostsCommands(t *testing.T) {
	f := newFixture(t)
	var mu sync.Mutex
	var queued []func()
	post := func(fn func()) {
		mu.Lock()
		defer mu.Unlock()
		queued = append(queued, fn)
	}
	var out strings.Builder
	c := NewConsole(f.panel, post, &out)

	in := strings.NewReader("set particlesSizes 250\n\nget particlesSizes\nbogus\n")
	if err := c.Run(t.Context(), in); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if f.size.Value() != 100 {
		t.Fatalf("size changed before posted commands ran")
	}
	if len(queued) != 3 {
		t.Fatalf("posted %d commands; want 3", len(queued))
	}
	for _, fn := range queued {
		fn()
	}
	if f.size.Value() != 250 {
		t.Fatalf("size=%v; want 250", f.size.Value())
	}
	want := "particlesSizes = 250\nparticlesSizes = 250\nerror: "
	if !strings.HasPrefix(out.String(), want) {
		t.Fatalf("output=%q; want prefix %q", out.String(), want)
	}
}
