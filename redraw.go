package progressbar

import "time"

// redrawInterval is the longest a caller can go without a redraw while it
// keeps updating the bar.
const redrawInterval = time.Second

type redrawInput struct {
	previousPercent int
	currentPercent  int
	previousStatus  Status
	currentStatus   Status
	sinceLastRedraw time.Duration
	finished        bool
}

// shouldRedraw reports whether an update is worth writing to the terminal.
func shouldRedraw(in redrawInput) bool {
	return in.currentPercent != in.previousPercent ||
		in.sinceLastRedraw >= redrawInterval ||
		in.finished ||
		in.currentStatus != in.previousStatus
}
