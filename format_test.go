package progressbar

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	for total := int64(1); total <= 300; total += 7 {
		for current := int64(0); current <= total; current++ {
			pct := percentage(current, total)
			assert.Equal(t, int(current*100/total), pct)
			assert.True(t, pct >= 0 && pct <= 100)
		}
	}
	for _, current := range []int64{0, 1, 50} {
		assert.Equal(t, 100, percentage(current, 0))
	}
	assert.Equal(t, 100, percentage(12, 10))
}

func TestReversedPercentage(t *testing.T) {
	for _, tc := range []struct{ current, total int64 }{{0, 100}, {33, 100}, {1, 3}, {0, 0}, {7, 7}} {
		p := &ProgressBar{config: config{total: tc.total, mode: Reversed}, state: state{current: tc.current}}
		assert.Equal(t, 100-percentage(tc.current, tc.total), p.percentage())
	}
}

func TestFormatBar(t *testing.T) {
	assert.Equal(t, "|=====     |", formatBar(50, 10, '='))
	assert.Equal(t, "|          |", formatBar(0, 10, '='))
	assert.Equal(t, "|##########|", formatBar(100, 10, '#'))
	assert.Equal(t, "|===    |", formatBar(49, 7, '='))
	assert.Equal(t, "||", formatBar(100, 0, '='))

	// widths count cells; an odd remainder stays blank
	assert.Equal(t, "|中中中|", formatBar(100, 6, '中'))
	assert.Equal(t, "|中     |", formatBar(50, 7, '中'))
	assert.Equal(t, "|中中中 |", formatBar(100, 7, '中'))
	assert.Equal(t, 9, lineWidth(formatBar(100, 7, '中')))
}

func TestFormatTitle(t *testing.T) {
	assert.Equal(t, "a very long t:", formatTitle("a very long title here", 14, false))
	assert.Equal(t, "short:", formatTitle("short", 14, false))
	assert.Equal(t, "这是:", formatTitle("这是一个", 6, false))
	assert.Equal(t, ":", formatTitle("anything", 1, false))
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "00:00:00", formatTime(0))
	assert.Equal(t, "00:00:59", formatTime(59900*time.Millisecond))
	assert.Equal(t, "01:01:01", formatTime(3661*time.Second))
	assert.Equal(t, "100:00:00", formatTime(100*time.Hour))
	assert.Equal(t, "-1:59:55", formatTime(-5*time.Second))
	assert.Equal(t, "-1:00:00", formatTime(-time.Hour))
	assert.Equal(t, "-2:59:59", formatSeconds(-3601))
}

func TestElapsedAndETA(t *testing.T) {
	assert.Equal(t, "Time: 00:02:05", elapsedLabel(125*time.Second))
	assert.Equal(t, "ETA:  --:--:--", etaLabel(0, 100, 10*time.Second))
	assert.Equal(t, "ETA:  --:--:--", etaLabel(0, 0, 0))
	assert.Equal(t, "ETA:  00:00:30", etaLabel(25, 100, 10*time.Second))
	assert.Equal(t, "ETA:  00:00:00", etaLabel(100, 100, 10*time.Second))

	// current past total after SetTotal
	assert.Equal(t, "ETA:  -1:59:58", etaLabel(10, 5, 5*time.Second))
	// beyond the range of time.Duration
	assert.Equal(t, "ETA:  27777777:46:39", etaLabel(1, 100_000_000_000, time.Second))
}

func TestConvertBytes(t *testing.T) {
	tests := []struct {
		bytes  float64
		expect string
	}{
		{0, "     0B"},
		{512, "   512B"},
		{1023, "  1023B"},
		{1024, "  1.0KB"},
		{2048, "  2.0KB"},
		{1024*1000 - 1024, "999.0KB"},
		{1024 * 1000, "  1.0MB"},
		{5 * 1024 * 1024, "  5.0MB"},
		{1024 * 1024 * 1000, "  1.0GB"},
		{3.5 * 1024 * 1024 * 1024, "  3.5GB"},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("%.0f", tc.bytes), func(t *testing.T) {
			assert.Equal(t, tc.expect, convertBytes(tc.bytes))
		})
	}
	assert.True(t, strings.HasSuffix(convertBytes(1024*1000-1), "KB"))
	assert.True(t, strings.HasSuffix(convertBytes(1024*1024*1000-1), "MB"))
}

func TestRateLabels(t *testing.T) {
	assert.Equal(t, "  2.0KB/s |", byteRateLabel(2048, time.Second))
	assert.Equal(t, "    10B/s |", byteRateLabel(20, 2*time.Second))
	assert.Equal(t, byteRateUnknown, byteRateLabel(2048, 0))

	assert.Equal(t, "    5.00/s |", iterRateLabel(10, 2*time.Second))
	assert.Equal(t, "  4.00s ea |", iterRateLabel(1, 4*time.Second))
	assert.Equal(t, "  1.00s ea |", iterRateLabel(3, 3*time.Second))
	assert.Equal(t, iterRateUnknown, iterRateLabel(1, 0))
	assert.Equal(t, iterRateUnknown, iterRateLabel(0, 5*time.Second))
	assert.Len(t, iterRateUnknown, len(iterRateLabel(10, 2*time.Second)))
	assert.Len(t, byteRateUnknown, len(byteRateLabel(2048, time.Second)))
}

func TestDefaultFormat(t *testing.T) {
	assert.Equal(t, "%-14s %3d%% %s %s", defaultFormat(14))
	assert.Equal(t, "%-s %3d%% %s %s", defaultFormat(0))
	assert.Equal(t, "x:              42% |=| ETA", fmt.Sprintf(defaultFormat(14), "x:", 42, "|=|", "ETA"))
}

func TestFragmentString(t *testing.T) {
	assert.Equal(t, "stat_for_iter_rate", StatForIterRate.String())
	assert.Equal(t, "Fragment(42)", Fragment(42).String())
}
