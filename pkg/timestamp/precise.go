package timestamp

import (
	"errors"
	"log/slog"
	"math"
	"math/big"

	"lukechampine.com/uint128"

	"github.com/aelexs/timestamp/internal/calendar"
	"github.com/aelexs/timestamp/internal/domain"
	"github.com/aelexs/timestamp/internal/timefmt"
)

// PreciseElapsedTime is a span of time in nanoseconds, stored in 128 bits.
// Arithmetic wraps on 128-bit overflow.
type PreciseElapsedTime struct {
	ns uint128.Uint128
}

// NewPreciseElapsedTime builds a duration from its components. Components
// are not range checked; 1500 milliseconds is 1.5 seconds.
func NewPreciseElapsedTime(days, hours, minutes, seconds, milliseconds, microseconds, nanoseconds uint64) PreciseElapsedTime {
	ns := uint128.From64(nanoseconds).
		AddWrap(uint128.From64(microseconds).MulWrap64(domain.NanosPerMicro)).
		AddWrap(uint128.From64(milliseconds).MulWrap64(domain.NanosPerMilli)).
		AddWrap(uint128.From64(seconds).MulWrap64(domain.NanosPerSecond)).
		AddWrap(uint128.From64(minutes).MulWrap64(domain.NanosPerMinute)).
		AddWrap(uint128.From64(hours).MulWrap64(domain.NanosPerHour)).
		AddWrap(uint128.From64(days).MulWrap64(domain.NanosPerDay))
	return PreciseElapsedTime{ns: ns}
}

// PreciseFromNanoseconds wraps a 128-bit nanosecond count.
func PreciseFromNanoseconds(ns uint128.Uint128) PreciseElapsedTime {
	return PreciseElapsedTime{ns: ns}
}

// PreciseFromUint64 wraps a 64-bit nanosecond count.
func PreciseFromUint64(ns uint64) PreciseElapsedTime {
	return PreciseElapsedTime{ns: uint128.From64(ns)}
}

// ParsePrecise parses a decimal nanosecond count of up to 128 bits. Only
// ASCII digits are accepted: no sign, exponent, fraction or base prefix.
func ParsePrecise(s string) (PreciseElapsedTime, error) {
	ns, err := parseNanoseconds(s)
	if err != nil {
		return PreciseElapsedTime{}, wrapInput("nanoseconds", s, err)
	}
	return PreciseElapsedTime{ns: ns}, nil
}

var (
	errNotDecimal   = errors.New("not an unsigned decimal integer")
	errOverflows128 = errors.New("overflows 128 bits")
)

func parseNanoseconds(s string) (uint128.Uint128, error) {
	if s == "" {
		return uint128.Zero, errNotDecimal
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return uint128.Zero, errNotDecimal
		}
	}
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return uint128.Zero, errNotDecimal
	}
	if b.BitLen() > 128 {
		return uint128.Zero, errOverflows128
	}
	return uint128.FromBig(b), nil
}

func (p PreciseElapsedTime) Nanoseconds() uint128.Uint128  { return p.ns }
func (p PreciseElapsedTime) Microseconds() uint128.Uint128 { return p.ns.Div64(domain.NanosPerMicro) }
func (p PreciseElapsedTime) Milliseconds() uint128.Uint128 { return p.ns.Div64(domain.NanosPerMilli) }
func (p PreciseElapsedTime) Seconds() uint128.Uint128      { return p.ns.Div64(domain.NanosPerSecond) }
func (p PreciseElapsedTime) Minutes() uint128.Uint128      { return p.ns.Div64(domain.NanosPerMinute) }
func (p PreciseElapsedTime) Hours() uint128.Uint128        { return p.ns.Div64(domain.NanosPerHour) }
func (p PreciseElapsedTime) Days() uint128.Uint128         { return p.ns.Div64(domain.NanosPerDay) }

// Hour returns the hour within the current day, 0-23.
func (p PreciseElapsedTime) Hour() int { return int(p.Hours().Mod64(domain.HoursPerDay)) }

// Minute returns the minute within the current hour, 0-59.
func (p PreciseElapsedTime) Minute() int { return int(p.Minutes().Mod64(domain.MinutesPerHour)) }

// Second returns the second within the current minute, 0-59.
func (p PreciseElapsedTime) Second() int { return int(p.Seconds().Mod64(domain.SecondsPerMinute)) }

// Nanosecond returns the nanosecond within the current second.
func (p PreciseElapsedTime) Nanosecond() int { return int(p.ns.Mod64(domain.NanosPerSecond)) }

// ElapsedTime truncates p to milliseconds, saturating at the uint64 range.
func (p PreciseElapsedTime) ElapsedTime() ElapsedTime {
	return ElapsedTime{ms: saturate64(p.Milliseconds())}
}

// IsZero reports whether p is an empty span.
func (p PreciseElapsedTime) IsZero() bool { return p.ns.IsZero() }

// Add returns p + d.
func (p PreciseElapsedTime) Add(d PreciseElapsedTime) PreciseElapsedTime {
	return PreciseElapsedTime{ns: p.ns.AddWrap(d.ns)}
}

// Sub returns p - d, or zero when d is longer than p.
func (p PreciseElapsedTime) Sub(d PreciseElapsedTime) PreciseElapsedTime {
	if p.ns.Cmp(d.ns) <= 0 {
		return PreciseElapsedTime{}
	}
	return PreciseElapsedTime{ns: p.ns.Sub(d.ns)}
}

// Compare returns -1, 0 or +1 as p is shorter than, equal to or longer than d.
func (p PreciseElapsedTime) Compare(d PreciseElapsedTime) int { return p.ns.Cmp(d.ns) }

// Format renders p with DurationLayout and a nine-digit fraction, e.g.
// "01:00:00.000000000".
func (p PreciseElapsedTime) Format() string { return p.FormatWith(domain.DurationLayout) }

// FormatWith renders p with a custom template.
func (p PreciseElapsedTime) FormatWith(template string) string {
	return timefmt.Render(preciseFields{ns: p.ns}, timefmt.Nanosecond, template)
}

func (p PreciseElapsedTime) String() string { return p.Format() }

// LogValue implements slog.LogValuer.
func (p PreciseElapsedTime) LogValue() slog.Value { return slog.StringValue(p.Format()) }

func saturate64(v uint128.Uint128) uint64 {
	if v.Hi != 0 {
		return math.MaxUint64
	}
	return v.Lo
}

// preciseFields adapts a nanosecond duration to timefmt.Source.
type preciseFields struct {
	ns uint128.Uint128
}

func (f preciseFields) anchored() int64 {
	ms := saturate64(f.ns.Div64(domain.NanosPerMilli))
	if ms > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(ms)
}

func (f preciseFields) Year() int        { return calendar.MillisecondsToYear(f.anchored()) }
func (f preciseFields) Month() int       { return calendar.MillisecondsToMonth(f.anchored()) }
func (f preciseFields) DayOfMonth() int  { return calendar.MillisecondsToDayOfMonth(f.anchored()) }
func (f preciseFields) DayCount() uint64 { return saturate64(f.ns.Div64(domain.NanosPerDay)) }
func (f preciseFields) Hour() int        { return PreciseElapsedTime(f).Hour() }
func (f preciseFields) Minute() int      { return PreciseElapsedTime(f).Minute() }
func (f preciseFields) Second() int      { return PreciseElapsedTime(f).Second() }
func (f preciseFields) Fraction() uint64 { return f.ns.Mod64(domain.NanosPerSecond) }

var (
	_ timefmt.Source = preciseFields{}
	_ slog.LogValuer = PreciseElapsedTime{}
)
