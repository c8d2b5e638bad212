// Package timestamp provides immutable calendar and duration values backed by
// a single integer:
//
//   - CalendarInstant: milliseconds since the start of year 0 (proleptic Gregorian).
//   - ElapsedTime: an unanchored duration in milliseconds.
//   - PreciseElapsedTime: an unanchored duration in nanoseconds, 128 bits wide.
//
// Every accessor re-derives its field from the stored integer; nothing is
// cached, so values are safe to share between goroutines.
//
// StopWatch and TimeStamp are small collaborators built on those values. They
// read the wall clock through a Clock so tests can substitute a fake one.
//
// Format templates use the tokens %Y %m %D %d %H %M %S %f:
//
//	ci, _ := timestamp.FromUnixMilliseconds(1_685_284_606_076)
//	ci.Format()                       // "2023-05-28 14:36:46.076"
//	timestamp.ElapsedDays(1).Format() // "1 00:00:00.000"
package timestamp
