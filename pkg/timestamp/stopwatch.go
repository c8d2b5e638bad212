package timestamp

import (
	"lukechampine.com/uint128"

	"github.com/aelexs/timestamp/internal/domain"
)

// StopWatch measures wall-clock time elapsed since it was started, with
// nanosecond precision.
//
// It samples the wall clock, not a monotonic timer: a clock adjustment
// between two readings can make the second reading smaller than the first.
// A clock stepped back past the start reads as zero elapsed time.
type StopWatch struct {
	start uint128.Uint128
	clock Clock
}

// StartStopWatch starts a stopwatch on the system clock.
func StartStopWatch() StopWatch {
	return StartStopWatchWithClock(domain.RealClock{})
}

// StartStopWatchWithClock starts a stopwatch on c.
func StartStopWatchWithClock(c Clock) StopWatch {
	c = domain.OrReal(c)
	return StopWatch{start: uint128.From64(domain.NowUnixNanos(c)), clock: c}
}

// StartedAt returns the instant the stopwatch was started, truncated to the
// millisecond.
func (s StopWatch) StartedAt() CalendarInstant {
	return MustFromUnixMilliseconds(int64(s.start.Div64(domain.NanosPerMilli).Lo))
}

// Elapsed returns the time since start.
func (s StopWatch) Elapsed() PreciseElapsedTime {
	return PreciseElapsedTime{ns: s.ElapsedNanoseconds()}
}

// ElapsedNanoseconds returns the nanoseconds since start.
func (s StopWatch) ElapsedNanoseconds() uint128.Uint128 {
	now := uint128.From64(domain.NowUnixNanos(domain.OrReal(s.clock)))
	if now.Cmp(s.start) <= 0 {
		return uint128.Zero
	}
	return now.Sub(s.start)
}

func (s StopWatch) ElapsedMicroseconds() uint128.Uint128 { return s.Elapsed().Microseconds() }
func (s StopWatch) ElapsedMilliseconds() uint128.Uint128 { return s.Elapsed().Milliseconds() }
func (s StopWatch) ElapsedSeconds() uint128.Uint128      { return s.Elapsed().Seconds() }
func (s StopWatch) ElapsedMinutes() uint128.Uint128      { return s.Elapsed().Minutes() }
func (s StopWatch) ElapsedHours() uint128.Uint128        { return s.Elapsed().Hours() }
func (s StopWatch) ElapsedDays() uint128.Uint128         { return s.Elapsed().Days() }
