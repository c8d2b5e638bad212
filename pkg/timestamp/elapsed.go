package timestamp

import (
	"cmp"
	"log/slog"
	"math"
	"time"

	"github.com/aelexs/timestamp/internal/calendar"
	"github.com/aelexs/timestamp/internal/domain"
	"github.com/aelexs/timestamp/internal/timefmt"
)

// ElapsedTime is a span of time in milliseconds, not anchored to any epoch.
// Arithmetic wraps on uint64 overflow.
type ElapsedTime struct {
	ms uint64
}

// NewElapsedTime builds a duration from whole days, hours, minutes and seconds.
func NewElapsedTime(days, hours, minutes, seconds uint64) ElapsedTime {
	return ElapsedTime{ms: days*domain.MillisPerDay +
		hours*domain.MillisPerHour +
		minutes*domain.MillisPerMinute +
		seconds*domain.MillisPerSecond}
}

func ElapsedDays(n uint64) ElapsedTime         { return ElapsedTime{ms: n * domain.MillisPerDay} }
func ElapsedHours(n uint64) ElapsedTime        { return ElapsedTime{ms: n * domain.MillisPerHour} }
func ElapsedMinutes(n uint64) ElapsedTime      { return ElapsedTime{ms: n * domain.MillisPerMinute} }
func ElapsedSeconds(n uint64) ElapsedTime      { return ElapsedTime{ms: n * domain.MillisPerSecond} }
func ElapsedMilliseconds(n uint64) ElapsedTime { return ElapsedTime{ms: n} }

// FromDuration converts d, truncated to the millisecond. Negative durations
// become zero.
func FromDuration(d time.Duration) ElapsedTime {
	if d < 0 {
		return ElapsedTime{}
	}
	return ElapsedTime{ms: uint64(d.Milliseconds())}
}

// Duration converts e to a time.Duration, saturating at the largest
// representable duration.
func (e ElapsedTime) Duration() time.Duration {
	if e.ms > math.MaxInt64/uint64(time.Millisecond) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(e.ms) * time.Millisecond
}

// Hour returns the hour within the current day, 0-23.
func (e ElapsedTime) Hour() int { return int(e.ms / domain.MillisPerHour % domain.HoursPerDay) }

// Minute returns the minute within the current hour, 0-59.
func (e ElapsedTime) Minute() int { return int(e.ms / domain.MillisPerMinute % domain.MinutesPerHour) }

// Second returns the second within the current minute, 0-59.
func (e ElapsedTime) Second() int { return int(e.ms / domain.MillisPerSecond % domain.SecondsPerMinute) }

// Millisecond returns the millisecond within the current second, 0-999.
func (e ElapsedTime) Millisecond() int { return int(e.ms % domain.MillisPerSecond) }

func (e ElapsedTime) Milliseconds() uint64 { return e.ms }
func (e ElapsedTime) Seconds() uint64      { return e.ms / domain.MillisPerSecond }
func (e ElapsedTime) Minutes() uint64      { return e.ms / domain.MillisPerMinute }
func (e ElapsedTime) Hours() uint64        { return e.ms / domain.MillisPerHour }
func (e ElapsedTime) Days() uint64         { return e.ms / domain.MillisPerDay }

// IsZero reports whether e is an empty span.
func (e ElapsedTime) IsZero() bool { return e.ms == 0 }

// Add returns e + d.
func (e ElapsedTime) Add(d ElapsedTime) ElapsedTime { return ElapsedTime{ms: e.ms + d.ms} }

// Compare returns -1, 0 or +1 as e is shorter than, equal to or longer than d.
func (e ElapsedTime) Compare(d ElapsedTime) int { return cmp.Compare(e.ms, d.ms) }

// Format renders e with DurationLayout: "00:00:00.000" below one day,
// "1 00:00:00.000" from one day on.
func (e ElapsedTime) Format() string { return e.FormatWith(domain.DurationLayout) }

// FormatWith renders e with a custom template. %D is the number of whole
// elapsed days. Calendar tokens (%Y %m %d) treat e as an offset from the
// start of year 0.
func (e ElapsedTime) FormatWith(template string) string {
	return timefmt.Render(elapsedFields{ms: e.ms}, timefmt.Millisecond, template)
}

func (e ElapsedTime) String() string { return e.Format() }

// LogValue implements slog.LogValuer.
func (e ElapsedTime) LogValue() slog.Value { return slog.StringValue(e.Format()) }

// elapsedFields adapts a millisecond duration to timefmt.Source.
type elapsedFields struct {
	ms uint64
}

// anchored clamps the duration into the range the calendar functions accept.
func (f elapsedFields) anchored() int64 {
	if f.ms > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(f.ms)
}

func (f elapsedFields) Year() int        { return calendar.MillisecondsToYear(f.anchored()) }
func (f elapsedFields) Month() int       { return calendar.MillisecondsToMonth(f.anchored()) }
func (f elapsedFields) DayOfMonth() int  { return calendar.MillisecondsToDayOfMonth(f.anchored()) }
func (f elapsedFields) DayCount() uint64 { return f.ms / domain.MillisPerDay }
func (f elapsedFields) Hour() int        { return ElapsedTime(f).Hour() }
func (f elapsedFields) Minute() int      { return ElapsedTime(f).Minute() }
func (f elapsedFields) Second() int      { return ElapsedTime(f).Second() }
func (f elapsedFields) Fraction() uint64 { return f.ms % domain.MillisPerSecond }

var (
	_ timefmt.Source = elapsedFields{}
	_ slog.LogValuer = ElapsedTime{}
)
