package progressbar

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/k0kubun/go-ansi"
	"github.com/mattn/go-runewidth"
)

// ErrInvalidCount is returned by Set when the count is outside [0, total].
var ErrInvalidCount = errors.New("invalid count")

// ProgressBar is a single-line terminal progress bar.
//
// A ProgressBar is not safe for concurrent use; callers updating one bar
// from several goroutines must serialize the calls themselves.
type ProgressBar struct {
	state  state
	config config
}

// State is a snapshot of the bar.
type State struct {
	Title    string
	Current  int64
	Total    int64
	Percent  int
	Elapsed  time.Duration
	Status   Status
	Finished bool
	Halted   bool
}

type state struct {
	current  int64
	previous int64 // current at the last redraw

	startTime time.Time
	endTime   time.Time
	lastShown time.Time

	finished bool
	halted   bool

	status     Status
	lastStatus Status // status at the last redraw

	// usable width of the bar segment, adjusted by every fit
	barWidth int

	rendered string
}

type config struct {
	title       string
	titleWidth  int
	expandTitle bool
	total       int64

	barMark    rune
	format     string
	formatArgs []Fragment
	mode       PercentageMode

	writer    io.Writer
	columns   int
	widthFunc WidthFunc
	colorize  Colorizer
	now       func() time.Time

	// set once the caller picks the sink or the colorizer
	customWriter    bool
	customColorizer bool

	// whether the title may contain colorstring markup such as "[red]"
	colorCodes bool

	// whether Clear should use the ANSI erase-line sequence
	useANSICodes bool

	// invisible doesn't render the bar at all
	invisible bool
}

// Option is the type all options need to adhere to.
type Option func(p *ProgressBar)

// OptionBarMark sets the glyph used to fill the bar (default '=').
func OptionBarMark(mark rune) Option {
	return func(p *ProgressBar) {
		p.config.barMark = mark
	}
}

// OptionWriter sets the output sink (defaults to standard error).
// Writers with a Flush() error method are flushed after every redraw.
func OptionWriter(w io.Writer) Option {
	return func(p *ProgressBar) {
		p.config.writer = w
		p.config.customWriter = true
	}
}

// OptionCurrent sets the initial count.
func OptionCurrent(current int64) Option {
	return func(p *ProgressBar) {
		p.state.current = current
	}
}

// OptionFormatArguments selects which fragments make up the line and in what order.
func OptionFormatArguments(args ...Fragment) Option {
	return func(p *ProgressBar) {
		p.config.formatArgs = append([]Fragment(nil), args...)
	}
}

// OptionFormat sets the printf-style template consuming the fragments positionally.
func OptionFormat(format string) Option {
	return func(p *ProgressBar) {
		p.config.format = format
	}
}

// OptionTerminalWidth sets the initial guess for the bar segment width.
// It is corrected on the first redraw.
func OptionTerminalWidth(width int) Option {
	return func(p *ProgressBar) {
		if width < 0 {
			width = 0
		}
		p.state.barWidth = width
	}
}

// OptionTitleWidth sets the number of columns reserved for the title.
func OptionTitleWidth(width int) Option {
	return func(p *ProgressBar) {
		p.config.titleWidth = width
	}
}

// OptionColumns overrides the terminal column count.
func OptionColumns(columns int) Option {
	return func(p *ProgressBar) {
		p.config.columns = columns
	}
}

// OptionWidthFunc replaces the terminal width query.
func OptionWidthFunc(f WidthFunc) Option {
	return func(p *ProgressBar) {
		p.config.widthFunc = f
	}
}

// OptionColorizer replaces the function used to apply status colours.
func OptionColorizer(c Colorizer) Option {
	return func(p *ProgressBar) {
		p.config.colorize = c
		p.config.customColorizer = true
	}
}

// OptionColorCodes enables or disables colorstring markup in the title.
func OptionColorCodes(enable bool) Option {
	return func(p *ProgressBar) {
		p.config.colorCodes = enable
	}
}

// OptionVisibility sets the visibility.
func OptionVisibility(visible bool) Option {
	return func(p *ProgressBar) {
		p.config.invisible = !visible
	}
}

// OptionUseANSICodes makes Clear erase the line with an ANSI escape sequence.
//
// Only useful in environments with support for ANSI escape sequences.
func OptionUseANSICodes(enable bool) Option {
	return func(p *ProgressBar) {
		p.config.useANSICodes = enable
	}
}

// OptionClock sets the time source, useful for testing.
func OptionClock(now func() time.Time) Option {
	return func(p *ProgressBar) {
		p.config.now = now
	}
}

// OptionReversed makes the bar deplete instead of fill.
func OptionReversed() Option {
	return func(p *ProgressBar) {
		p.config.mode = Reversed
	}
}

// New constructs a bar and renders it once.
func New(title string, total int, options ...Option) *ProgressBar {
	return New64(title, int64(total), options...)
}

// NewReversed constructs a bar whose percentage counts down from 100.
func NewReversed(title string, total int, options ...Option) *ProgressBar {
	return New64(title, int64(total), append([]Option{OptionReversed()}, options...)...)
}

// New64 constructs a bar and renders it once.
func New64(title string, total int64, options ...Option) *ProgressBar {
	d := CurrentDefaults()

	b := ProgressBar{
		state: state{
			barWidth: defaultBarWidth,
		},
		config: config{
			title:      title,
			total:      total,
			titleWidth: d.TitleWidth,
			barMark:    d.BarMark,
			formatArgs: []Fragment{Title, Percentage, Bar, Stat},
			writer:     ansi.NewAnsiStderr(),
			columns:    d.Columns,
			now:        time.Now,
			invisible:  d.OutputDisabled,
		},
	}
	if b.config.barMark == 0 {
		b.config.barMark = '='
	}
	if d.IterRateMode {
		b.config.formatArgs = iterRateArgs()
	}
	if d.FileTransferMode {
		b.config.formatArgs = fileTransferArgs()
	}
	if d.ColorStatus {
		b.state.status = StatusGreen
	}

	for _, o := range options {
		o(&b)
	}

	if !b.config.customColorizer {
		b.config.colorize = statusColorizer(colorEnabled(b.config.writer, !b.config.customWriter))
	}
	if b.config.titleWidth <= 0 {
		b.config.titleWidth = runewidth.StringWidth(title) + 1
	}
	if b.config.format == "" {
		b.config.format = defaultFormat(b.config.titleWidth)
	}
	if b.state.current < 0 {
		b.state.current = 0
	}
	b.state.previous = b.state.current
	b.state.startTime = b.config.now()
	b.state.lastShown = b.state.startTime

	b.Clear()
	b.render()

	return &b
}

// String returns the current rendering of the progress bar.
func (p *ProgressBar) String() string {
	return p.state.rendered
}

// RenderBlank renders the current bar state regardless of the redraw policy.
func (p *ProgressBar) RenderBlank() error {
	return p.render()
}

// Increment advances the bar by one.
func (p *ProgressBar) Increment() error {
	return p.add(1)
}

// Add advances the bar by the specified amount, stopping at the total.
func (p *ProgressBar) Add(delta int) error {
	return p.add(int64(delta))
}

// Add64 advances the bar by the specified amount, stopping at the total.
func (p *ProgressBar) Add64(delta int64) error {
	return p.add(delta)
}

func (p *ProgressBar) add(delta int64) error {
	p.state.current += delta
	if p.state.current > p.config.total {
		p.state.current = p.config.total
	}
	if p.state.current < 0 {
		p.state.current = 0
	}
	return p.renderIfNeeded()
}

// Set sets the current count. It fails with ErrInvalidCount, leaving the bar
// untouched, if value is negative or greater than the total.
func (p *ProgressBar) Set(value int) error {
	return p.Set64(int64(value))
}

// Set64 sets the current count. See Set.
func (p *ProgressBar) Set64(value int64) error {
	if value < 0 || value > p.config.total {
		return fmt.Errorf("%w: %d (total: %d)", ErrInvalidCount, value, p.config.total)
	}
	p.state.current = value
	return p.renderIfNeeded()
}

// Finish fills the bar to full and leaves the cursor on a fresh line.
func (p *ProgressBar) Finish() error {
	p.state.current = p.config.total
	p.state.endTime = p.config.now()
	p.state.finished = true
	return p.render()
}

// Halt stops the bar at its current count, for work that ended early.
func (p *ProgressBar) Halt() error {
	p.state.endTime = p.config.now()
	p.state.finished = true
	p.state.halted = true
	return p.render()
}

// IsFinished returns true once Finish or Halt has been called.
func (p *ProgressBar) IsFinished() bool {
	return p.state.finished
}

// IsHalted returns true if the bar was stopped with Halt.
func (p *ProgressBar) IsHalted() bool {
	return p.state.halted
}

// Title returns the title.
func (p *ProgressBar) Title() string {
	return p.config.title
}

// Current returns the current count.
func (p *ProgressBar) Current() int64 {
	return p.state.current
}

// Total returns the total count.
func (p *ProgressBar) Total() int64 {
	return p.config.total
}

// Status returns the status colour.
func (p *ProgressBar) Status() Status {
	return p.state.status
}

// StartTime returns the time elapsed and ETA figures are measured from.
func (p *ProgressBar) StartTime() time.Time {
	return p.state.startTime
}

// SetStartTime moves the reference point for elapsed and ETA figures.
func (p *ProgressBar) SetStartTime(t time.Time) {
	p.state.startTime = t
}

// Rate returns the average duration of one unit of work so far.
func (p *ProgressBar) Rate() time.Duration {
	if p.state.current == 0 {
		return 0
	}
	return p.elapsed(p.config.now()) / time.Duration(p.state.current)
}

// State returns the current state.
func (p *ProgressBar) State() State {
	now := p.config.now()
	return State{
		Title:    p.config.title,
		Current:  p.state.current,
		Total:    p.config.total,
		Percent:  p.percentage(),
		Elapsed:  p.elapsed(now),
		Status:   p.state.status,
		Finished: p.state.finished,
		Halted:   p.state.halted,
	}
}

// SetTitle changes the title.
func (p *ProgressBar) SetTitle(title string) {
	p.config.title = title
	if p.config.expandTitle {
		p.config.titleWidth = runewidth.StringWidth(title) + 1
	}
	p.render()
}

// SetTotal changes the total count.
func (p *ProgressBar) SetTotal(total int64) error {
	p.config.total = total
	return p.render()
}

// SetRemaining sets the total to the current count plus remaining.
func (p *ProgressBar) SetRemaining(remaining int64) error {
	return p.SetTotal(p.state.current + remaining)
}

// SetFormat changes the printf-style line template.
func (p *ProgressBar) SetFormat(format string) {
	p.config.format = format
	p.render()
}

// SetFormatArguments changes which fragments fill the template.
func (p *ProgressBar) SetFormatArguments(args ...Fragment) {
	p.config.formatArgs = append([]Fragment(nil), args...)
	p.render()
}

// SetBarMark changes the fill glyph.
func (p *ProgressBar) SetBarMark(mark rune) {
	p.config.barMark = mark
	p.render()
}

// FileTransferMode switches the trailing statistic to byte count and transfer rate.
func (p *ProgressBar) FileTransferMode() {
	p.config.formatArgs = fileTransferArgs()
	p.render()
}

// IterRateMode switches the trailing statistic to the iteration rate.
func (p *ProgressBar) IterRateMode() {
	p.config.formatArgs = iterRateArgs()
	p.render()
}

// ExpandTitle stops truncating the title and sizes its column to fit.
func (p *ProgressBar) ExpandTitle() {
	p.config.expandTitle = true
	p.config.titleWidth = runewidth.StringWidth(p.config.title) + 1
	p.config.format = defaultFormat(0)
	p.render()
}

// Colorize sets the status colour.
func (p *ProgressBar) Colorize(s Status) {
	p.state.status = s
	p.renderIfNeeded()
}

// ShowColorStatus turns the status colour on, green unless one is already set.
func (p *ProgressBar) ShowColorStatus() {
	if p.state.status == StatusNone {
		p.state.status = StatusGreen
	}
	p.renderIfNeeded()
}

// HideColorStatus removes the status colour.
func (p *ProgressBar) HideColorStatus() {
	p.Colorize(StatusNone)
}

// ResetStatus sets the status back to green.
func (p *ProgressBar) ResetStatus() {
	p.Colorize(StatusGreen)
}

// Warning turns the bar yellow, unless it is already red.
func (p *ProgressBar) Warning() {
	if p.state.status == StatusRed {
		return
	}
	p.Colorize(StatusYellow)
}

// Error turns the bar red.
func (p *ProgressBar) Error() {
	p.Colorize(StatusRed)
}

func iterRateArgs() []Fragment {
	return []Fragment{Title, Percentage, Bar, StatForIterRate}
}

func fileTransferArgs() []Fragment {
	return []Fragment{Title, Percentage, Bar, StatForFileTransfer}
}
