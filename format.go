package progressbar

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/colorstring"
	"github.com/rivo/uniseg"
)

// Fragment names one independently formatted piece of the line.
type Fragment int

const (
	Title Fragment = iota
	Percentage
	Bar
	// Stat is the elapsed time once finished and the ETA before that.
	Stat
	// StatForFileTransfer is byte count, transfer rate and Stat.
	StatForFileTransfer
	// StatForIterRate is iteration rate and Stat.
	StatForIterRate
)

func (f Fragment) String() string {
	switch f {
	case Title:
		return "title"
	case Percentage:
		return "percentage"
	case Bar:
		return "bar"
	case Stat:
		return "stat"
	case StatForFileTransfer:
		return "stat_for_file_transfer"
	case StatForIterRate:
		return "stat_for_iter_rate"
	}
	return fmt.Sprintf("Fragment(%d)", int(f))
}

// PercentageMode selects whether the bar fills or depletes.
type PercentageMode int

const (
	Normal PercentageMode = iota
	Reversed
)

const (
	etaUnknown      = "ETA:  --:--:--"
	byteRateUnknown = "     --/s |"
	iterRateUnknown = "      --/s |"
)

// defaultFormat returns the line template for a title column of the given
// width; 0 leaves the title unpadded.
func defaultFormat(titleWidth int) string {
	if titleWidth <= 0 {
		return "%-s %3d%% %s %s"
	}
	return fmt.Sprintf("%%-%ds %%3d%%%% %%s %%s", titleWidth)
}

// percentage is floor(current*100/total), 100 for an empty total and capped
// at 100 when current overshoots.
func percentage(current, total int64) int {
	if total == 0 {
		return 100
	}
	pct := current * 100 / total
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return int(pct)
}

func (p *ProgressBar) percentage() int {
	pct := percentage(p.state.current, p.config.total)
	if p.config.mode == Reversed {
		return 100 - pct
	}
	return pct
}

// formatBar renders a bar of exactly width+2 cells. width counts terminal
// cells, so a double-width mark fills two of them.
func formatBar(pct, width int, mark rune) string {
	if width < 0 {
		width = 0
	}
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	marks := 0
	// a zero-width mark cannot fill anything and leaves the bar blank
	mw := uniseg.StringWidth(string(mark))
	if mw > 0 {
		marks = filled / mw
	}
	return "|" + strings.Repeat(string(mark), marks) + strings.Repeat(" ", width-marks*mw) + "|"
}

func formatTitle(title string, width int, colorCodes bool) string {
	if width > 1 {
		title = runewidth.Truncate(title, width-1, "")
	} else {
		title = ""
	}
	if colorCodes {
		title = colorstring.Color(title)
	}
	return title + ":"
}

// formatTime renders whole seconds as HH:MM:SS.
func formatTime(d time.Duration) string {
	return formatSeconds(int64(d / time.Second))
}

// formatSeconds uses floored division so that a negative count reads as
// hours below zero, e.g. -2 is "-1:59:58".
func formatSeconds(t int64) string {
	sec := floorMod(t, 60)
	mins := floorMod(floorDiv(t, 60), 60)
	hour := floorDiv(t, 3600)
	return fmt.Sprintf("%02d:%02d:%02d", hour, mins, sec)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int64) int64 {
	return a - floorDiv(a, b)*b
}

func elapsedLabel(elapsed time.Duration) string {
	return "Time: " + formatTime(elapsed)
}

func etaLabel(current, total int64, elapsed time.Duration) string {
	if current == 0 {
		return etaUnknown
	}
	e := elapsed.Seconds()
	eta := e*float64(total)/float64(current) - e
	// seconds are kept out of time.Duration, which overflows past ~292 years
	switch {
	case math.IsNaN(eta):
		return etaUnknown
	case eta >= math.MaxInt64/2:
		eta = math.MaxInt64 / 2
	case eta <= math.MinInt64/2:
		eta = math.MinInt64 / 2
	}
	return "ETA:  " + formatSeconds(int64(eta))
}

// convertBytes formats a byte count in a seven column field.
func convertBytes(bytes float64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%6dB", int64(bytes))
	case bytes < 1024*1000:
		return fmt.Sprintf("%5.1fKB", bytes/1024)
	case bytes < 1024*1024*1000:
		return fmt.Sprintf("%5.1fMB", bytes/1024/1024)
	default:
		return fmt.Sprintf("%5.1fGB", bytes/1024/1024/1024)
	}
}

func byteRateLabel(current int64, elapsed time.Duration) string {
	if elapsed <= 0 {
		return byteRateUnknown
	}
	return convertBytes(float64(current)/elapsed.Seconds()) + "/s |"
}

func iterRateLabel(current int64, elapsed time.Duration) string {
	if elapsed <= 0 || current <= 0 {
		return iterRateUnknown
	}
	rate := float64(current) / elapsed.Seconds()
	if rate > 1 {
		return fmt.Sprintf("%8.2f/s |", rate)
	}
	return fmt.Sprintf("%6.2fs ea |", 1/rate)
}

func (p *ProgressBar) elapsed(now time.Time) time.Duration {
	if p.state.finished && !p.state.endTime.IsZero() {
		return p.state.endTime.Sub(p.state.startTime)
	}
	return now.Sub(p.state.startTime)
}

func (p *ProgressBar) stat(now time.Time) string {
	elapsed := p.elapsed(now)
	if p.state.finished {
		return elapsedLabel(elapsed)
	}
	return etaLabel(p.state.current, p.config.total, elapsed)
}

func (p *ProgressBar) fragment(f Fragment, now time.Time) any {
	switch f {
	case Title:
		return formatTitle(p.config.title, p.config.titleWidth, p.config.colorCodes)
	case Percentage:
		return p.percentage()
	case Bar:
		return formatBar(p.percentage(), p.state.barWidth, p.config.barMark)
	case Stat:
		return p.stat(now)
	case StatForFileTransfer:
		elapsed := p.elapsed(now)
		return fmt.Sprintf("%s %s %s",
			convertBytes(float64(p.state.current)), byteRateLabel(p.state.current, elapsed), p.stat(now))
	case StatForIterRate:
		return fmt.Sprintf("%s %s", iterRateLabel(p.state.current, p.elapsed(now)), p.stat(now))
	}
	return ""
}

func (p *ProgressBar) line(now time.Time) string {
	args := make([]any, 0, len(p.config.formatArgs))
	for _, f := range p.config.formatArgs {
		args = append(args, p.fragment(f, now))
	}
	return fmt.Sprintf(p.config.format, args...)
}
