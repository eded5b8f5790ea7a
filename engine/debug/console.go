package debug

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/shlex"
)

// ErrUnknownCommand is returned for a console command the console does not know.
var ErrUnknownCommand = errors.New("unknown command")

const consoleHelp = `commands:
  list               show every control and its value
  get <name>         show one control
  set <name> <value> change a control, quote values with spaces
  help               show this message`

// Console is a line-oriented front end to a Panel.
type Console struct {
	panel *Panel
	post  func(func())
	out   io.Writer
}

// NewConsole creates a console over a panel. Every command is handed to post, which must run
// it on the goroutine that owns the panel's targets, typically Engine.Post.
//
// Parameters:
//   - panel: the panel to drive
//   - post: schedules a function on the owning goroutine
//   - out: where command output is written
//
// Returns:
//   - *Console: the console
func NewConsole(panel *Panel, post func(func()), out io.Writer) *Console {
	return &Console{panel: panel, post: post, out: out}
}

// Exec runs one command line directly on the calling goroutine.
//
// Parameters:
//   - line: the command line, tokenized with shell quoting rules
//
// Returns:
//   - string: the command's output
//   - error: a tokenizing error, ErrUnknownCommand, or a panel error
func (c *Console) Exec(line string) (string, error) {
	args, err := shlex.Split(line)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", line, err)
	}
	if len(args) == 0 {
		return "", nil
	}

	switch args[0] {
	case "list", "ls":
		return c.panel.Table(), nil
	case "get":
		if len(args) != 2 {
			return "", errors.New("usage: get <name>")
		}
		v, err := c.panel.Get(args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s\n", args[1], v), nil
	case "set":
		if len(args) != 3 {
			return "", errors.New("usage: set <name> <value>")
		}
		if err := c.panel.Set(args[1], args[2]); err != nil {
			return "", err
		}
		v, _ := c.panel.Get(args[1])
		return fmt.Sprintf("%s = %s\n", args[1], v), nil
	case "help", "?":
		return consoleHelp + "\n", nil
	default:
		return "", fmt.Errorf("%q: %w", args[0], ErrUnknownCommand)
	}
}

// Run reads command lines from in until EOF or ctx is done, posting each for execution.
// Output and errors are written to the console's writer from the owning goroutine.
// A read blocked on in is not interrupted by ctx; Run returns after the next line.
//
// Parameters:
//   - ctx: stops the reader
//   - in: the command source, usually os.Stdin
//
// Returns:
//   - error: a read error, nil on EOF or cancellation
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.post(func() {
			out, err := c.Exec(line)
			if err != nil {
				log.Printf("[Console] %v", err)
				fmt.Fprintf(c.out, "error: %v\n", err)
				return
			}
			io.WriteString(c.out, out)
		})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}
