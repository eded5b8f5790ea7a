package debug

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/medusa/common"
)

// defaultPanelWidth is the panel width in window units, as wide as the scene's tuning GUI.
const defaultPanelWidth = 400

// glyphWidth approximates one monospace character in window units when laying out the table.
const glyphWidth = 8

// Panel is an ordered set of live-tunable controls with one selected control for
// keyboard editing. Controls keep their registration order.
type Panel struct {
	mu *sync.Mutex

	bindings []Binding
	index    map[string]int
	selected int
	width    int
	shift    bool
	logf     func(format string, args ...any)
}

// PanelOption is a functional option applied to a Panel during construction via NewPanel.
type PanelOption func(*Panel)

// WithWidth sets the panel width in window units.
//
// Parameters:
//   - width: the width (values <= 0 are ignored)
//
// Returns:
//   - PanelOption: option function to apply
func WithWidth(width int) PanelOption {
	return func(p *Panel) {
		if width > 0 {
			p.width = width
		}
	}
}

// WithLogf redirects the panel's change log, log.Printf by default.
//
// Parameters:
//   - logf: a printf-style sink
//
// Returns:
//   - PanelOption: option function to apply
func WithLogf(logf func(format string, args ...any)) PanelOption {
	return func(p *Panel) {
		if logf != nil {
			p.logf = logf
		}
	}
}

// NewPanel creates an empty panel.
//
// Parameters:
//   - options: a variadic list of PanelOption functions
//
// Returns:
//   - *Panel: the panel
func NewPanel(options ...PanelOption) *Panel {
	p := &Panel{
		mu:    &sync.Mutex{},
		index: make(map[string]int),
		width: defaultPanelWidth,
		logf:  log.Printf,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Add registers controls in order.
//
// Parameters:
//   - bindings: the controls to add
//
// Returns:
//   - error: an error wrapping ErrDuplicateControl if a name is already taken; controls
//     before the duplicate stay registered
func (p *Panel) Add(bindings ...Binding) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range bindings {
		if _, ok := p.index[b.Name()]; ok {
			return fmt.Errorf("%q: %w", b.Name(), ErrDuplicateControl)
		}
		p.index[b.Name()] = len(p.bindings)
		p.bindings = append(p.bindings, b)
	}
	return nil
}

// Controls returns the registered controls in order.
func (p *Panel) Controls() []Binding {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Binding(nil), p.bindings...)
}

// Width returns the panel width in window units.
func (p *Panel) Width() int {
	return p.width
}

func (p *Panel) lookup(name string) (Binding, error) {
	i, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownControl)
	}
	return p.bindings[i], nil
}

// Get formats the current value of a control.
//
// Parameters:
//   - name: the control label
//
// Returns:
//   - string: the formatted value
//   - error: an error wrapping ErrUnknownControl for an unknown name
func (p *Panel) Get(name string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, err := p.lookup(name)
	if err != nil {
		return "", err
	}
	return b.Get(), nil
}

// Set parses and applies a value to a control.
//
// Parameters:
//   - name: the control label
//   - value: the textual value
//
// Returns:
//   - error: an error wrapping ErrUnknownControl or ErrInvalidValue; nothing changes on error
func (p *Panel) Set(name, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, err := p.lookup(name)
	if err != nil {
		return err
	}
	if err := b.Set(value); err != nil {
		return err
	}
	p.logf("[Panel] %s = %s", b.Name(), b.Get())
	return nil
}

// SetNumber applies a numeric value to a number control.
//
// Parameters:
//   - name: the control label
//   - value: the value, snapped and clamped by the control
//
// Returns:
//   - error: an error wrapping ErrUnknownControl, or ErrInvalidValue for a non-number control
func (p *Panel) SetNumber(name string, value float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, err := p.lookup(name)
	if err != nil {
		return err
	}
	nb, ok := b.(*NumberBinding)
	if !ok {
		return fmt.Errorf("%s is a %s control: %w", name, b.Kind(), ErrInvalidValue)
	}
	nb.target.Set(nb.Snap(value))
	p.logf("[Panel] %s = %s", nb.Name(), nb.Get())
	return nil
}

// SetColor applies a color to a color control.
//
// Parameters:
//   - name: the control label
//   - c: the color
//
// Returns:
//   - error: an error wrapping ErrUnknownControl, or ErrInvalidValue for a non-color control
func (p *Panel) SetColor(name string, c common.Color) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, err := p.lookup(name)
	if err != nil {
		return err
	}
	if b.Kind() != KindColor {
		return fmt.Errorf("%s is a %s control: %w", name, b.Kind(), ErrInvalidValue)
	}
	if err := b.Set(c.Hex()); err != nil {
		return err
	}
	p.logf("[Panel] %s = %s", b.Name(), b.Get())
	return nil
}

// Selected returns the control that keyboard edits apply to, nil for an empty panel.
func (p *Panel) Selected() Binding {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.bindings) == 0 {
		return nil
	}
	return p.bindings[p.selected]
}

// SelectNext moves the selection forward, wrapping around.
func (p *Panel) SelectNext() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.move(1)
}

// SelectPrev moves the selection backward, wrapping around.
func (p *Panel) SelectPrev() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.move(-1)
}

func (p *Panel) move(delta int) {
	n := len(p.bindings)
	if n == 0 {
		return
	}
	p.selected = ((p.selected+delta)%n + n) % n
	b := p.bindings[p.selected]
	p.logf("[Panel] selected %s (%s) = %s", b.Name(), b.Kind(), b.Get())
}

// Nudge moves the selected number control by a number of steps. Color controls ignore it.
//
// Parameters:
//   - steps: signed step count
func (p *Panel) Nudge(steps int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.bindings) == 0 {
		return
	}
	nb, ok := p.bindings[p.selected].(*NumberBinding)
	if !ok {
		return
	}
	nb.Nudge(steps)
	p.logf("[Panel] %s = %s", nb.Name(), nb.Get())
}

// KeyDown handles a key press from the render window: Tab and Shift-Tab change the selection,
// Up and Down nudge the selected slider by one step, ten with Shift held.
//
// Parameters:
//   - keyCode: the virtual key code (see common.Key*)
func (p *Panel) KeyDown(keyCode uint32) {
	switch keyCode {
	case common.KeyLeftShift, common.KeyRightShift:
		p.mu.Lock()
		p.shift = true
		p.mu.Unlock()
	case common.KeyTab:
		if p.shiftHeld() {
			p.SelectPrev()
		} else {
			p.SelectNext()
		}
	case common.KeyUp:
		p.Nudge(p.nudgeSteps())
	case common.KeyDown:
		p.Nudge(-p.nudgeSteps())
	}
}

// KeyUp handles a key release from the render window.
//
// Parameters:
//   - keyCode: the virtual key code (see common.Key*)
func (p *Panel) KeyUp(keyCode uint32) {
	if keyCode == common.KeyLeftShift || keyCode == common.KeyRightShift {
		p.mu.Lock()
		p.shift = false
		p.mu.Unlock()
	}
}

func (p *Panel) shiftHeld() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shift
}

func (p *Panel) nudgeSteps() int {
	if p.shiftHeld() {
		return 10
	}
	return 1
}

// Table renders the controls as a fixed-width text table, one control per line, fitted to the
// panel width. The selected control is marked with '>'.
//
// Returns:
//   - string: the table
func (p *Panel) Table() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	cols := max(p.width/glyphWidth, 24)
	nameCol := 0
	for _, b := range p.bindings {
		nameCol = max(nameCol, len(b.Name()))
	}

	var sb strings.Builder
	for i, b := range p.bindings {
		marker := ' '
		if i == p.selected {
			marker = '>'
		}
		line := fmt.Sprintf("%c %-*s  %-10s %s", marker, nameCol, b.Name(), b.Get(), b.Describe())
		if len(line) > cols {
			line = line[:cols]
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
