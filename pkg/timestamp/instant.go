package timestamp

import (
	"cmp"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aelexs/timestamp/internal/calendar"
	"github.com/aelexs/timestamp/internal/domain"
	"github.com/aelexs/timestamp/internal/timefmt"
)

// Fields holds the decomposed calendar and clock fields of an instant.
type Fields = calendar.Fields

// CalendarInstant is a point in time stored as milliseconds since the start
// of year 0. The zero value is 0000-01-01 00:00:00.000.
type CalendarInstant struct {
	ms int64
}

// NewCalendarInstant builds an instant from calendar fields. It returns
// ErrFieldOutOfRange when a field does not name a real date or time.
func NewCalendarInstant(year, month, day, hour, minute, second int) (CalendarInstant, error) {
	f := calendar.Fields{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second,
	}
	if !f.Valid() {
		return CalendarInstant{}, fmt.Errorf("%04d-%02d-%02d %02d:%02d:%02d: %w",
			year, month, day, hour, minute, second, ErrFieldOutOfRange)
	}
	return CalendarInstant{ms: f.Milliseconds()}, nil
}

// MustCalendarInstant is like NewCalendarInstant but panics on invalid fields.
func MustCalendarInstant(year, month, day, hour, minute, second int) CalendarInstant {
	ci, err := NewCalendarInstant(year, month, day, hour, minute, second)
	if err != nil {
		panic(err)
	}
	return ci
}

// FromMilliseconds builds an instant from milliseconds since the start of year 0.
func FromMilliseconds(ms int64) (CalendarInstant, error) {
	if ms < 0 {
		return CalendarInstant{}, fmt.Errorf("%d ms: %w", ms, ErrNegativeCalendarValue)
	}
	return CalendarInstant{ms: ms}, nil
}

// FromUnixMilliseconds builds an instant from milliseconds since the Unix
// epoch, the value returned by time.Time.UnixMilli or JavaScript's Date.now.
func FromUnixMilliseconds(ms int64) (CalendarInstant, error) {
	if ms > math.MaxInt64-domain.EpochOffset {
		return CalendarInstant{}, fmt.Errorf("unix %d ms overflows: %w", ms, ErrInvalidInput)
	}
	ci, err := FromMilliseconds(ms + domain.EpochOffset)
	if err != nil {
		return CalendarInstant{}, fmt.Errorf("unix %d ms: %w", ms, ErrNegativeCalendarValue)
	}
	return ci, nil
}

// MustFromUnixMilliseconds is like FromUnixMilliseconds but panics on error.
func MustFromUnixMilliseconds(ms int64) CalendarInstant {
	ci, err := FromUnixMilliseconds(ms)
	if err != nil {
		panic(err)
	}
	return ci
}

// FromTime converts t, truncated to the millisecond. The result matches the
// standard library calendar for every year from 1 onwards.
func FromTime(t time.Time) (CalendarInstant, error) {
	return FromUnixMilliseconds(t.UnixMilli())
}

// Now returns the current system time.
func Now() CalendarInstant {
	return NowFrom(domain.RealClock{})
}

// NowFrom returns the current time of c. It panics if c reports a time
// before the start of year 0.
func NowFrom(c Clock) CalendarInstant {
	return MustFromUnixMilliseconds(domain.NowUnixMillis(domain.OrReal(c)))
}

// Year returns the calendar year.
func (c CalendarInstant) Year() int { return calendar.MillisecondsToYear(c.ms) }

// Month returns the month, 1-12.
func (c CalendarInstant) Month() int { return calendar.MillisecondsToMonth(c.ms) }

// DayOfMonth returns the day of the month, starting at 1.
func (c CalendarInstant) DayOfMonth() int { return calendar.MillisecondsToDayOfMonth(c.ms) }

// DayOfYear returns the day of the year, starting at 1.
func (c CalendarInstant) DayOfYear() int { return calendar.MillisecondsToDayOfYear(c.ms) }

// DayOfWeek returns the weekday, Sunday = 0 through Saturday = 6.
func (c CalendarInstant) DayOfWeek() int { return calendar.MillisecondsToDayOfWeek(c.ms) }

// Weekday returns DayOfWeek as a time.Weekday.
func (c CalendarInstant) Weekday() time.Weekday { return time.Weekday(c.DayOfWeek()) }

func (c CalendarInstant) Hour() int        { return calendar.HourOfDay(c.ms) }
func (c CalendarInstant) Minute() int      { return calendar.MinuteOfHour(c.ms) }
func (c CalendarInstant) Second() int      { return calendar.SecondOfMinute(c.ms) }
func (c CalendarInstant) Millisecond() int { return calendar.MillisecondOfSecond(c.ms) }

// Fields decomposes the instant into every calendar field at once.
func (c CalendarInstant) Fields() Fields { return calendar.Decompose(c.ms) }

// Milliseconds returns the total milliseconds since the start of year 0.
func (c CalendarInstant) Milliseconds() int64 { return c.ms }

// Seconds returns the total seconds since the start of year 0.
func (c CalendarInstant) Seconds() int64 { return c.ms / domain.MillisPerSecond }

// Minutes returns the total minutes since the start of year 0.
func (c CalendarInstant) Minutes() int64 { return c.ms / domain.MillisPerMinute }

// Hours returns the total hours since the start of year 0.
func (c CalendarInstant) Hours() int64 { return c.ms / domain.MillisPerHour }

// Days returns the total whole days since the start of year 0.
func (c CalendarInstant) Days() int64 { return calendar.Days(c.ms) }

// UnixMilliseconds returns the milliseconds since the Unix epoch.
func (c CalendarInstant) UnixMilliseconds() int64 { return c.ms - domain.EpochOffset }

// Time converts the instant to a UTC time.Time.
func (c CalendarInstant) Time() time.Time { return time.UnixMilli(c.UnixMilliseconds()).UTC() }

// IsZero reports whether c is the start of year 0.
func (c CalendarInstant) IsZero() bool { return c.ms == 0 }

// Add returns c shifted forward by d, saturating at the largest
// representable instant.
func (c CalendarInstant) Add(d ElapsedTime) CalendarInstant {
	if d.ms > uint64(math.MaxInt64-c.ms) {
		return CalendarInstant{ms: math.MaxInt64}
	}
	return CalendarInstant{ms: c.ms + int64(d.ms)}
}

// Sub returns the time elapsed from u to c, or zero when u is after c.
func (c CalendarInstant) Sub(u CalendarInstant) ElapsedTime {
	if u.ms >= c.ms {
		return ElapsedTime{}
	}
	return ElapsedTime{ms: uint64(c.ms - u.ms)}
}

// Compare returns -1, 0 or +1 as c is before, equal to or after u.
func (c CalendarInstant) Compare(u CalendarInstant) int { return cmp.Compare(c.ms, u.ms) }

func (c CalendarInstant) Before(u CalendarInstant) bool { return c.ms < u.ms }
func (c CalendarInstant) After(u CalendarInstant) bool  { return c.ms > u.ms }
func (c CalendarInstant) Equal(u CalendarInstant) bool  { return c.ms == u.ms }

// Format renders c with DateTimeLayout, e.g. "2023-05-28 14:36:46.076".
func (c CalendarInstant) Format() string { return c.FormatWith(domain.DateTimeLayout) }

// FormatWith renders c with a custom template. %D is the day count since
// the start of year 0.
func (c CalendarInstant) FormatWith(template string) string {
	return timefmt.Render(instantFields{ms: c.ms}, timefmt.Millisecond, template)
}

func (c CalendarInstant) String() string { return c.Format() }

// LogValue implements slog.LogValuer.
func (c CalendarInstant) LogValue() slog.Value { return slog.StringValue(c.Format()) }

// instantFields adapts a year-0 millisecond count to timefmt.Source.
type instantFields struct {
	ms int64
}

func (f instantFields) Year() int        { return calendar.MillisecondsToYear(f.ms) }
func (f instantFields) Month() int       { return calendar.MillisecondsToMonth(f.ms) }
func (f instantFields) DayCount() uint64 { return uint64(calendar.Days(f.ms)) }
func (f instantFields) DayOfMonth() int  { return calendar.MillisecondsToDayOfMonth(f.ms) }
func (f instantFields) Hour() int        { return calendar.HourOfDay(f.ms) }
func (f instantFields) Minute() int      { return calendar.MinuteOfHour(f.ms) }
func (f instantFields) Second() int      { return calendar.SecondOfMinute(f.ms) }
func (f instantFields) Fraction() uint64 { return uint64(calendar.MillisecondOfSecond(f.ms)) }

var (
	_ timefmt.Source = instantFields{}
	_ slog.LogValuer = CalendarInstant{}
	_ fmt.Stringer   = CalendarInstant{}
)
