package progressbar

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func widthBar(opts ...Option) *ProgressBar {
	return New("test", 10, append([]Option{OptionWriter(io.Discard)}, opts...)...)
}

func TestColumnsFallback(t *testing.T) {
	t.Setenv("COLUMNS", "")
	assert.Equal(t, DefaultColumns, widthBar().columns())
}

func TestColumnsEnv(t *testing.T) {
	t.Setenv("COLUMNS", "120")
	assert.Equal(t, 120, widthBar().columns())

	t.Setenv("COLUMNS", "12O")
	assert.Equal(t, DefaultColumns, widthBar().columns())

	t.Setenv("COLUMNS", "0")
	assert.Equal(t, DefaultColumns, widthBar().columns())
}

func TestColumnsOverride(t *testing.T) {
	t.Setenv("COLUMNS", "120")
	assert.Equal(t, 60, widthBar(OptionColumns(60)).columns())
	assert.Equal(t, 60, widthBar(OptionColumns(60), OptionWidthFunc(func() (int, error) { return 100, nil })).columns())
}

func TestColumnsWidthFunc(t *testing.T) {
	t.Setenv("COLUMNS", "120")
	assert.Equal(t, 100, widthBar(OptionWidthFunc(func() (int, error) { return 100, nil })).columns())
	assert.Equal(t, DefaultColumns, widthBar(OptionWidthFunc(func() (int, error) { return 0, errors.New("no tty") })).columns())
	assert.Equal(t, DefaultColumns, widthBar(OptionWidthFunc(func() (int, error) { return -3, nil })).columns())
}

func TestColumnsTerminal(t *testing.T) {
	t.Setenv("COLUMNS", "")
	saved := termWidth
	defer func() { termWidth = saved }()
	termWidth = func() (int, error) { return 132, nil }
	assert.Equal(t, 132, widthBar().columns())
}
