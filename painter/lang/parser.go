package lang

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ederatone/drawide/painter"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("wrong number of arguments")
	ErrNotNumber      = errors.New("not a number")
	ErrOutOfRange     = errors.New("value out of range")
)

// SyntaxError describes why a command line produced no shape.
type SyntaxError struct {
	Command string
	Err     error
}

func (e *SyntaxError) Error() string {
	if e.Command == "" {
		return e.Err.Error()
	}
	return e.Command + ": " + e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

type command struct {
	usage string
	arity int
	build func(a []float64) (painter.Shape, error)
}

var commands = map[string]command{
	"line": {
		usage: "line x1 y1 x2 y2",
		arity: 4,
		build: func(a []float64) (painter.Shape, error) { return painter.NewLine(a[0], a[1], a[2], a[3]) },
	},
	"circle": {
		usage: "circle cx cy r",
		arity: 3,
		build: func(a []float64) (painter.Shape, error) { return painter.NewCircle(a[0], a[1], a[2]) },
	},
	"rect": {
		usage: "rect x y w h",
		arity: 4,
		build: func(a []float64) (painter.Shape, error) { return painter.NewRect(a[0], a[1], a[2], a[3]) },
	},
}

// Parse turns a single command line into a shape.
//
// Blank lines and lines starting with '#' produce (nil, nil). Any other line
// that does not describe a valid shape produces a nil shape and a
// *SyntaxError wrapping one of ErrUnknownCommand, ErrArgCount, ErrNotNumber
// or ErrOutOfRange.
func Parse(commandLine string) (painter.Shape, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil, nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		return nil, &SyntaxError{Err: fmt.Errorf("%w %q", ErrUnknownCommand, fields[0])}
	}
	args := fields[1:]
	if len(args) != cmd.arity {
		return nil, &SyntaxError{Command: name, Err: fmt.Errorf("%w: got %d, usage: %s", ErrArgCount, len(args), cmd.usage)}
	}

	vals := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, &SyntaxError{Command: name, Err: fmt.Errorf("%w: %s", ErrOutOfRange, arg)}
			}
			return nil, &SyntaxError{Command: name, Err: fmt.Errorf("%w: %q", ErrNotNumber, arg)}
		}
		vals[i] = v
	}

	sh, err := cmd.build(vals)
	if err != nil {
		return nil, &SyntaxError{Command: name, Err: fmt.Errorf("%w: %v", ErrOutOfRange, err)}
	}
	return sh, nil
}

// Keywords returns the usage line of every supported command, sorted by keyword.
func Keywords() []string {
	return []string{
		commands["circle"].usage,
		commands["line"].usage,
		commands["rect"].usage,
	}
}
