package timestamp_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aelexs/timestamp/pkg/timestamp"
)

func TestElapsedTimeConstructors(t *testing.T) {
	tests := []struct {
		name                        string
		e                           timestamp.ElapsedTime
		hour, minute, second, milli int
		want                        string
	}{
		{"zero", timestamp.NewElapsedTime(0, 0, 0, 0), 0, 0, 0, 0, "00:00:00.000"},
		{"one day", timestamp.ElapsedDays(1), 0, 0, 0, 0, "1 00:00:00.000"},
		{"one hour", timestamp.ElapsedHours(1), 1, 0, 0, 0, "01:00:00.000"},
		{"one minute", timestamp.ElapsedMinutes(1), 0, 1, 0, 0, "00:01:00.000"},
		{"one second", timestamp.ElapsedSeconds(1), 0, 0, 1, 0, "00:00:01.000"},
		{"one millisecond", timestamp.ElapsedMilliseconds(1), 0, 0, 0, 1, "00:00:00.001"},
		{"mixed fields", timestamp.NewElapsedTime(2, 3, 4, 5), 3, 4, 5, 0, "2 03:04:05.000"},
		{"large", timestamp.ElapsedMilliseconds(5_504_294_967_295), 2, 49, 27, 295, "63707 02:49:27.295"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hour, tt.e.Hour())
			assert.Equal(t, tt.minute, tt.e.Minute())
			assert.Equal(t, tt.second, tt.e.Second())
			assert.Equal(t, tt.milli, tt.e.Millisecond())
			assert.Equal(t, tt.want, tt.e.Format())
		})
	}
}

func TestNewElapsedTimeWithOneDayFormatsLeadingSegment(t *testing.T) {
	assert.Equal(t, "1 00:00:00.000", timestamp.NewElapsedTime(1, 0, 0, 0).Format())
}

func TestElapsedTimeTotals(t *testing.T) {
	e := timestamp.NewElapsedTime(1, 1, 1, 1)

	assert.Equal(t, uint64(90_061_000), e.Milliseconds())
	assert.Equal(t, uint64(90_061), e.Seconds())
	assert.Equal(t, uint64(1_501), e.Minutes())
	assert.Equal(t, uint64(25), e.Hours())
	assert.Equal(t, uint64(1), e.Days())
}

func TestElapsedTimeDuration(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		d := 90*time.Minute + 250*time.Millisecond
		assert.Equal(t, d, timestamp.FromDuration(d).Duration())
	})

	t.Run("truncates below a millisecond", func(t *testing.T) {
		assert.Equal(t, uint64(1), timestamp.FromDuration(1999*time.Microsecond).Milliseconds())
	})

	t.Run("negative becomes zero", func(t *testing.T) {
		assert.True(t, timestamp.FromDuration(-time.Second).IsZero())
	})

	t.Run("saturates", func(t *testing.T) {
		e := timestamp.ElapsedMilliseconds(math.MaxUint64)
		assert.Equal(t, time.Duration(math.MaxInt64), e.Duration())
	})
}

func TestElapsedTimeAddCompare(t *testing.T) {
	a := timestamp.ElapsedMinutes(90)
	b := timestamp.ElapsedHours(1)

	assert.Equal(t, timestamp.ElapsedMinutes(150), a.Add(b))
	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestElapsedTimeFormatWith(t *testing.T) {
	e := timestamp.NewElapsedTime(3, 4, 5, 6)

	assert.Equal(t, "3d 04h", e.FormatWith("%Dd %Hh"))
	assert.Equal(t, "04:05:06", e.FormatWith("%H:%M:%S"))
	// Calendar tokens treat the duration as an offset from the start of year 0.
	assert.Equal(t, "0-01-04", e.FormatWith("%Y-%m-%d"))
	assert.Equal(t, e.Format(), e.String())
	assert.Equal(t, e.Format(), e.LogValue().String())
}

func TestElapsedTimeWrapsOnOverflow(t *testing.T) {
	e := timestamp.ElapsedMilliseconds(math.MaxUint64).Add(timestamp.ElapsedMilliseconds(2))

	assert.Equal(t, uint64(1), e.Milliseconds())
}

func TestElapsedTimeBeyondInt64Formats(t *testing.T) {
	e := timestamp.ElapsedMilliseconds(math.MaxUint64)

	assert.NotPanics(t, func() { _ = e.FormatWith("%Y %D %H:%M:%S.%f") })
	assert.Equal(t, "213503982334 14:25:51.615", e.Format())
}
