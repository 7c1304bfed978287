package progressbar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultsLifecycle(t *testing.T) {
	t.Cleanup(ClearDefaults)
	assert.Equal(t, Defaults{TitleWidth: 14, BarMark: '='}, CurrentDefaults())

	UpdateDefaults(func(d *Defaults) {
		d.Columns = 60
		d.TitleWidth = 10
		d.BarMark = '#'
	})
	bar := New("test(globals)", 100, OptionWriter(&strings.Builder{}), OptionClock(newClock().Now))
	assert.Len(t, bar.String(), 59)
	assert.True(t, strings.HasPrefix(bar.String(), "test(glob:"))
	bar.Add(50)
	assert.Contains(t, bar.String(), "|#")

	other := newTestBar("test(globals)", 100, &strings.Builder{}, newClock(), OptionTitleWidth(20))
	assert.True(t, strings.HasPrefix(other.String(), "test(globals):       "), "call-site options win")

	ClearDefaults()
	assert.Equal(t, Defaults{TitleWidth: DefaultTitleWidth, BarMark: '='}, CurrentDefaults())
	bar = newTestBar("test(globals)", 100, &strings.Builder{}, newClock())
	assert.Len(t, bar.String(), 79)
}

func TestDefaultsModes(t *testing.T) {
	t.Cleanup(ClearDefaults)

	SetDefaults(Defaults{TitleWidth: 14, IterRateMode: true})
	bar := newTestBar("test", 100, &strings.Builder{}, newClock())
	assert.Contains(t, bar.String(), "/s | ETA")
	assert.NotContains(t, bar.String(), "B/s")

	SetDefaults(Defaults{TitleWidth: 14, FileTransferMode: true})
	bar = newTestBar("test", 100, &strings.Builder{}, newClock())
	assert.Contains(t, bar.String(), "     0B      --/s | ETA")

	bar = newTestBar("test", 100, &strings.Builder{}, newClock(), OptionFormatArguments(Title, Percentage, Bar, Stat))
	assert.NotContains(t, bar.String(), "/s |")

	SetDefaults(Defaults{TitleWidth: 14, ColorStatus: true})
	bar = newTestBar("test", 100, &strings.Builder{}, newClock())
	assert.Equal(t, StatusGreen, bar.Status())
}

func TestDisableOutput(t *testing.T) {
	t.Cleanup(ClearDefaults)

	DisableOutput()
	buf := strings.Builder{}
	bar := newTestBar("test", 100, &buf, newClock())
	assert.NoError(t, bar.Add(50))
	assert.NoError(t, bar.Finish())
	assert.Empty(t, buf.String())

	EnableOutput()
	bar = newTestBar("test", 100, &buf, newClock())
	assert.NotEmpty(t, buf.String())
}
