package progressbar

import "sync"

// DefaultTitleWidth is the title column width of a bar built with initial defaults.
const DefaultTitleWidth = 14

// Defaults are process-wide settings read when a bar is constructed.
// Options passed to New take precedence over them.
type Defaults struct {
	// TitleWidth is the number of columns reserved for the title.
	TitleWidth int

	// OutputDisabled suppresses all writes.
	OutputDisabled bool

	// IterRateMode and FileTransferMode switch new bars into the
	// corresponding mode; FileTransferMode wins if both are set.
	IterRateMode     bool
	FileTransferMode bool

	// ColorStatus starts new bars with a green status.
	ColorStatus bool

	// Columns overrides the terminal width when positive.
	Columns int

	// BarMark is the fill glyph, '=' when zero.
	BarMark rune
}

var (
	defaultsMu sync.RWMutex
	defaults   = initialDefaults()
)

func initialDefaults() Defaults {
	return Defaults{TitleWidth: DefaultTitleWidth, BarMark: '='}
}

// CurrentDefaults returns a copy of the process-wide defaults.
func CurrentDefaults() Defaults {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return defaults
}

// SetDefaults replaces the process-wide defaults.
func SetDefaults(d Defaults) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaults = d
}

// UpdateDefaults modifies the process-wide defaults in place.
func UpdateDefaults(f func(d *Defaults)) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	f(&defaults)
}

// ClearDefaults restores the defaults the library starts with.
func ClearDefaults() {
	SetDefaults(initialDefaults())
}

// DisableOutput silences bars constructed from now on.
func DisableOutput() {
	UpdateDefaults(func(d *Defaults) { d.OutputDisabled = true })
}

// EnableOutput undoes DisableOutput.
func EnableOutput() {
	UpdateDefaults(func(d *Defaults) { d.OutputDisabled = false })
}
