package progressbar

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

const defaultBarWidth = 80

// maxFitAttempts bounds the number of renders per redraw. The width
// corrections are exact, so two or three attempts is the usual case.
const maxFitAttempts = 8

// Regex matching ANSI escape codes.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// lineWidth returns the number of terminal cells str occupies.
func lineWidth(str string) int {
	// ANSI codes for colors do not take up space in the console output
	clean := ansiRegex.ReplaceAllString(strings.ReplaceAll(str, "\r", ""), "")
	return uniseg.StringWidth(clean)
}

// fit renders the line, adjusting the bar segment until the line is exactly
// one column narrower than the terminal or the bar cannot shrink any more.
func (p *ProgressBar) fit(now time.Time, columns int) (line string, attempts int) {
	for attempts < maxFitAttempts {
		attempts++
		line = p.line(now)
		n := lineWidth(line)
		switch {
		case n == columns-1:
			return line, attempts
		case n >= columns:
			if p.state.barWidth == 0 {
				return line, attempts
			}
			p.state.barWidth -= n - columns + 1
			if p.state.barWidth < 0 {
				p.state.barWidth = 0
			}
		default:
			p.state.barWidth += columns - n + 1
		}
	}
	return line, attempts
}

// render draws the bar unconditionally.
func (p *ProgressBar) render() error {
	if p.config.invisible {
		return nil
	}
	now := p.config.now()
	line, _ := p.fit(now, p.columns())

	p.state.rendered = line
	p.state.previous = p.state.current
	p.state.lastStatus = p.state.status
	p.state.lastShown = now

	out := "\r" + line
	if p.config.colorize != nil {
		out = "\r" + p.config.colorize(line, p.state.status)
	}
	if p.state.finished {
		out += "\n"
	}
	return p.write(out)
}

// renderIfNeeded draws the bar when the redraw policy asks for it.
func (p *ProgressBar) renderIfNeeded() error {
	if p.config.invisible {
		return nil
	}
	previousPercent := percentage(p.state.previous, p.config.total)
	if p.config.total == 0 {
		// an empty bar is always at 100%, redraw on every change
		previousPercent = 0
	}
	if !shouldRedraw(redrawInput{
		previousPercent: previousPercent,
		currentPercent:  percentage(p.state.current, p.config.total),
		previousStatus:  p.state.lastStatus,
		currentStatus:   p.state.status,
		sinceLastRedraw: p.config.now().Sub(p.state.lastShown),
		finished:        p.state.finished,
	}) {
		return nil
	}
	return p.render()
}

// Clear erases the bar from the current line without changing its state.
func (p *ProgressBar) Clear() error {
	if p.config.invisible {
		return nil
	}
	if p.config.useANSICodes {
		// write the "clear current line" ANSI escape sequence
		return p.write("\033[2K\r")
	}
	// overwrite the bar with spaces and return back to the beginning of the line
	n := p.columns() - 1
	if n < 0 {
		n = 0
	}
	return p.write("\r" + strings.Repeat(" ", n) + "\r")
}

type flusher interface {
	Flush() error
}

func (p *ProgressBar) write(str string) error {
	if _, err := io.WriteString(p.config.writer, str); err != nil {
		return err
	}
	switch w := p.config.writer.(type) {
	case flusher:
		return w.Flush()
	case *os.File:
		// ignore any errors in Sync(), as stdout
		// can't be synced on some operating systems
		w.Sync()
	}
	return nil
}
