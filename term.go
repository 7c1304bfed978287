package progressbar

import (
	"errors"
	"os"
	"regexp"
	"strconv"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultColumns is used when the terminal width cannot be determined.
const DefaultColumns = 80

// WidthFunc returns the number of terminal columns.
type WidthFunc func() (int, error)

var errNotTerminal = errors.New("not a terminal")

var columnsEnv = regexp.MustCompile(`^\d+$`)

// isTerminal reports whether fd is a terminal and can be redefined for
// testing.
var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// termWidth function returns the visible width of the current terminal
// and can be redefined for testing.
var termWidth = func() (width int, err error) {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		fd := f.Fd()
		if !isTerminal(fd) {
			continue
		}
		width, _, err = term.GetSize(int(fd))
		if err == nil && width > 0 {
			return width, nil
		}
	}
	return 0, errNotTerminal
}

// envColumns reads the COLUMNS override from the environment.
func envColumns() (int, error) {
	v := os.Getenv("COLUMNS")
	if !columnsEnv.MatchString(v) {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(v)
}

// columns resolves the terminal width: explicit override, injected width
// function, COLUMNS, the terminal itself, then DefaultColumns.
func (p *ProgressBar) columns() int {
	if p.config.columns > 0 {
		return p.config.columns
	}
	sources := []WidthFunc{envColumns, termWidth}
	if p.config.widthFunc != nil {
		sources = []WidthFunc{p.config.widthFunc}
	}
	for _, f := range sources {
		if n, err := f(); err == nil && n > 0 {
			return n
		}
	}
	return DefaultColumns
}
