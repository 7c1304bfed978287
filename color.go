package progressbar

import (
	"io"
	"os"

	"github.com/fatih/color"
)

// Status is the colour tag applied to the whole line.
type Status int

const (
	StatusNone Status = iota
	StatusGreen
	StatusYellow
	StatusRed
)

func (s Status) String() string {
	switch s {
	case StatusGreen:
		return "green"
	case StatusYellow:
		return "yellow"
	case StatusRed:
		return "red"
	}
	return "none"
}

// Colorizer decorates a rendered line for a status. StatusNone must leave
// the line as it is.
type Colorizer func(line string, status Status) string

// The colours are forced on: whether to emit them is decided per writer by
// colorEnabled, not by the colour package's own check of standard output.
var statusColors = map[Status]*color.Color{
	StatusGreen:  enabled(color.New(color.FgGreen)),
	StatusYellow: enabled(color.New(color.FgYellow)),
	StatusRed:    enabled(color.New(color.FgRed)),
}

func enabled(c *color.Color) *color.Color {
	c.EnableColor()
	return c
}

// colorEnabled reports whether w is a terminal. Writers exposing a file
// descriptor are checked directly; defaultSink stands for standard error.
func colorEnabled(w io.Writer, defaultSink bool) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return isTerminal(f.Fd())
	}
	return defaultSink && isTerminal(os.Stderr.Fd())
}

// statusColorizer is the default Colorizer, a no-op unless colour is on.
func statusColorizer(on bool) Colorizer {
	if !on {
		return func(line string, _ Status) string { return line }
	}
	return colorizeStatus
}

func colorizeStatus(line string, status Status) string {
	c, ok := statusColors[status]
	if !ok {
		return line
	}
	return c.Sprint(line)
}
