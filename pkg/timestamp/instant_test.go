package timestamp_test

import (
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aelexs/timestamp/internal/domain/domaintest"
	"github.com/aelexs/timestamp/pkg/timestamp"
)

const referenceUnixMillis = 1_685_284_606_076

func TestNewCalendarInstant(t *testing.T) {
	t.Run("2023-05-28 14:36:46", func(t *testing.T) {
		ci, err := timestamp.NewCalendarInstant(2023, 5, 28, 14, 36, 46)

		require.NoError(t, err)
		assert.Equal(t, 2023, ci.Year())
		assert.Equal(t, 5, ci.Month())
		assert.Equal(t, 28, ci.DayOfMonth())
		assert.Equal(t, 14, ci.Hour())
		assert.Equal(t, 36, ci.Minute())
		assert.Equal(t, 46, ci.Second())
		assert.Equal(t, 0, ci.DayOfWeek())
		assert.Equal(t, time.Sunday, ci.Weekday())
		assert.Equal(t, "2023-05-28 14:36:46.000", ci.Format())
	})

	t.Run("before 1970", func(t *testing.T) {
		ci, err := timestamp.NewCalendarInstant(1903, 12, 25, 18, 36, 46)

		require.NoError(t, err)
		assert.Equal(t, "1903-12-25 18:36:46.000", ci.Format())
		assert.Equal(t, 1903, ci.Year())
		assert.Equal(t, 12, ci.Month())
		assert.Equal(t, 25, ci.DayOfMonth())
		assert.Equal(t, 18, ci.Hour())
		assert.Equal(t, 5, ci.DayOfWeek())
	})

	t.Run("start of year 0", func(t *testing.T) {
		ci, err := timestamp.NewCalendarInstant(0, 1, 1, 0, 0, 0)

		require.NoError(t, err)
		assert.True(t, ci.IsZero())
		assert.Equal(t, "0-01-01 00:00:00.000", ci.Format())
	})

	invalid := []struct {
		name                                   string
		year, month, day, hour, minute, second int
	}{
		{"negative year", -1, 1, 1, 0, 0, 0},
		{"month 0", 2023, 0, 1, 0, 0, 0},
		{"month 13", 2023, 13, 1, 0, 0, 0},
		{"february 29 in common year", 2023, 2, 29, 0, 0, 0},
		{"april 31", 2023, 4, 31, 0, 0, 0},
		{"hour 24", 2023, 1, 1, 24, 0, 0},
		{"second 60", 2023, 1, 1, 0, 0, 60},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := timestamp.NewCalendarInstant(tt.year, tt.month, tt.day, tt.hour, tt.minute, tt.second)

			assert.ErrorIs(t, err, timestamp.ErrFieldOutOfRange)
		})
	}
}

func TestMustCalendarInstantPanics(t *testing.T) {
	assert.Panics(t, func() { timestamp.MustCalendarInstant(2023, 2, 30, 0, 0, 0) })
	assert.NotPanics(t, func() { timestamp.MustCalendarInstant(2024, 2, 29, 0, 0, 0) })
}

func TestFromUnixMilliseconds(t *testing.T) {
	ci, err := timestamp.FromUnixMilliseconds(referenceUnixMillis)

	require.NoError(t, err)
	assert.Equal(t, "2023-05-28 14:36:46.076", ci.Format())
	assert.Equal(t, 2023, ci.Year())
	assert.Equal(t, 5, ci.Month())
	assert.Equal(t, 28, ci.DayOfMonth())
	assert.Equal(t, 14, ci.Hour())
	assert.Equal(t, 36, ci.Minute())
	assert.Equal(t, 46, ci.Second())
	assert.Equal(t, 76, ci.Millisecond())
	assert.Equal(t, 0, ci.DayOfWeek())
	assert.Equal(t, 148, ci.DayOfYear())
	assert.Equal(t, int64(referenceUnixMillis), ci.UnixMilliseconds())
	assert.Equal(t, timestamp.EpochOffset+referenceUnixMillis, ci.Milliseconds())
}

func TestNegativeCalendarValue(t *testing.T) {
	tests := []struct {
		name  string
		build func() (timestamp.CalendarInstant, error)
	}{
		{"negative raw value", func() (timestamp.CalendarInstant, error) { return timestamp.FromMilliseconds(-1) }},
		{"unix offset before year 0", func() (timestamp.CalendarInstant, error) {
			return timestamp.FromUnixMilliseconds(-timestamp.EpochOffset - 1)
		}},
		{"time before year 0", func() (timestamp.CalendarInstant, error) {
			return timestamp.FromTime(time.Date(-1, 6, 1, 0, 0, 0, 0, time.UTC))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			assert.ErrorIs(t, err, timestamp.ErrNegativeCalendarValue)
		})
	}

	t.Run("unix offset of exactly year 0", func(t *testing.T) {
		ci, err := timestamp.FromUnixMilliseconds(-timestamp.EpochOffset)
		require.NoError(t, err)
		assert.True(t, ci.IsZero())
	})
}

func TestFromUnixMillisecondsOverflow(t *testing.T) {
	limit := int64(math.MaxInt64) - timestamp.EpochOffset

	ci, err := timestamp.FromUnixMilliseconds(limit)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), ci.Milliseconds())

	for _, ms := range []int64{limit + 1, math.MaxInt64} {
		_, err := timestamp.FromUnixMilliseconds(ms)
		assert.ErrorIs(t, err, timestamp.ErrInvalidInput, "unix %d ms", ms)
	}
}

func TestMustFromUnixMillisecondsPanics(t *testing.T) {
	assert.Panics(t, func() { timestamp.MustFromUnixMilliseconds(-timestamp.EpochOffset - 1) })
}

func TestTimeConversionMatchesStandardLibrary(t *testing.T) {
	dates := []time.Time{
		time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1600, 2, 29, 12, 0, 0, 0, time.UTC),
		time.Date(1903, 12, 25, 18, 36, 46, 0, time.UTC),
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 5, 28, 14, 36, 46, 76_000_000, time.UTC),
		time.Date(9999, 12, 31, 23, 59, 59, 999_000_000, time.UTC),
	}

	for _, want := range dates {
		t.Run(want.Format(time.RFC3339), func(t *testing.T) {
			ci, err := timestamp.FromTime(want)
			require.NoError(t, err)

			assert.Equal(t, want.Year(), ci.Year())
			assert.Equal(t, int(want.Month()), ci.Month())
			assert.Equal(t, want.Day(), ci.DayOfMonth())
			assert.Equal(t, want.YearDay(), ci.DayOfYear())
			assert.Equal(t, want.Weekday(), ci.Weekday())
			assert.True(t, want.Equal(ci.Time()), "got %s", ci.Time())
		})
	}
}

func TestNowFrom(t *testing.T) {
	clock := domaintest.NewFakeClockUnixMilli(referenceUnixMillis)

	ci := timestamp.NowFrom(clock)

	assert.Equal(t, "2023-05-28 14:36:46.076", ci.Format())
}

func TestNow(t *testing.T) {
	before := time.Now().UnixMilli()
	ci := timestamp.Now()
	after := time.Now().UnixMilli()

	assert.GreaterOrEqual(t, ci.UnixMilliseconds(), before)
	assert.LessOrEqual(t, ci.UnixMilliseconds(), after)
}

func TestCalendarInstantTotals(t *testing.T) {
	ci := timestamp.MustCalendarInstant(1, 1, 2, 1, 1, 1)

	assert.Equal(t, int64(366), ci.Days())
	assert.Equal(t, int64(366*24+1), ci.Hours())
	assert.Equal(t, int64((366*24+1)*60+1), ci.Minutes())
	assert.Equal(t, int64(((366*24+1)*60+1)*60+1), ci.Seconds())
	assert.Equal(t, ci.Seconds()*1000, ci.Milliseconds())
}

func TestCalendarInstantFields(t *testing.T) {
	ci := timestamp.MustFromUnixMilliseconds(referenceUnixMillis)

	f := ci.Fields()

	assert.Equal(t, timestamp.Fields{
		Year: 2023, Month: 5, Day: 28,
		Hour: 14, Minute: 36, Second: 46, Millisecond: 76,
		DayOfYear: 148, DayOfWeek: 0,
	}, f)
}

func TestCalendarInstantArithmetic(t *testing.T) {
	start := timestamp.MustCalendarInstant(2023, 12, 31, 23, 0, 0)

	later := start.Add(timestamp.ElapsedHours(2))

	assert.Equal(t, "2024-01-01 01:00:00.000", later.Format())
	assert.True(t, later.After(start))
	assert.True(t, start.Before(later))
	assert.False(t, start.Equal(later))
	assert.Equal(t, -1, start.Compare(later))
	assert.Equal(t, 1, later.Compare(start))
	assert.Equal(t, 0, start.Compare(start))
	assert.Equal(t, timestamp.ElapsedHours(2), later.Sub(start))
	assert.True(t, start.Sub(later).IsZero())
}

func TestCalendarInstantAddSaturates(t *testing.T) {
	start := timestamp.MustCalendarInstant(2023, 5, 28, 0, 0, 0)

	got := start.Add(timestamp.ElapsedMilliseconds(math.MaxUint64))

	assert.Equal(t, int64(math.MaxInt64), got.Milliseconds())
	assert.True(t, got.After(start))
}

func TestCalendarInstantFormatWith(t *testing.T) {
	ci := timestamp.MustFromUnixMilliseconds(referenceUnixMillis)

	tests := []struct {
		template string
		want     string
	}{
		{"%H:%M:%S", "14:36:46"},
		{"%d/%m/%Y", "28/05/2023"},
		{"%D", "739032"},
		{"day %D at %H", "day 739032 at 14"},
		{"%Y%m%dT%H%M%S.%f", "20230528T143646.076"},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			assert.Equal(t, tt.want, ci.FormatWith(tt.template))
		})
	}

	t.Run("zero day count is dropped", func(t *testing.T) {
		var zero timestamp.CalendarInstant
		assert.Equal(t, "00:00", zero.FormatWith("%D %H:%M"))
	})
}

func TestCalendarInstantLogValue(t *testing.T) {
	ci := timestamp.MustFromUnixMilliseconds(referenceUnixMillis)

	v := ci.LogValue()

	assert.Equal(t, slog.KindString, v.Kind())
	assert.Equal(t, "2023-05-28 14:36:46.076", v.String())
	assert.Equal(t, ci.Format(), ci.String())
}
