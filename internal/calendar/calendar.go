// Package calendar converts between a count of milliseconds since the start
// of year 0 and proleptic Gregorian calendar fields.
//
// Year 0 is a leap year under the Gregorian rule, but it is counted as 365
// days long when converting to and from day counts. That keeps the encoding
// in FieldsToMilliseconds, domain.EpochOffset and the weekday calibration
// consistent with each other.
//
// All functions are pure, do not allocate and expect non-negative input.
package calendar

import "github.com/aelexs/timestamp/internal/domain"

// Days in a given period of years, counted from the start of year 1.
const (
	daysPer400Years = 400*365 + 97
	daysPer100Years = 100*365 + 24
	daysPer4Years   = 4*365 + 1
)

// daysBefore[m] counts the days in a non-leap year before month m+1 begins.
// daysBefore[12] is the length of the whole year.
var daysBefore = [...]int{
	0,
	31,
	31 + 28,
	31 + 28 + 31,
	31 + 28 + 31 + 30,
	31 + 28 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30,
	31 + 28 + 31 + 30 + 31 + 30 + 31 + 31 + 30 + 31 + 30 + 31,
}

// IsLeapYear reports whether year is a leap year under the Gregorian rule.
// IsLeapYear(0) is true.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// hasLeapDay reports whether year carries a February 29 in day counting.
func hasLeapDay(year int) bool {
	return year > 0 && IsLeapYear(year)
}

// DaysInYear returns 366 for years with a leap day and 365 otherwise.
func DaysInYear(year int) int {
	if hasLeapDay(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in month (1-12) of year.
// It returns 0 for a month outside 1-12.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && hasLeapDay(year) {
		return 29
	}
	return daysBefore[month] - daysBefore[month-1]
}

// daysBeforeYear returns the number of whole days between the start of
// year 0 and the start of year.
func daysBeforeYear(year int) int64 {
	y := int64(year)
	days := y * 365
	if y > 0 {
		days += (y-1)/4 - (y-1)/100 + (y-1)/400
	}
	return days
}

// daysBeforeMonth returns the days in year before month (1-12) begins.
func daysBeforeMonth(year, month int) int {
	d := daysBefore[month-1]
	if month > 2 && hasLeapDay(year) {
		d++
	}
	return d
}

// FieldsToMilliseconds returns the milliseconds elapsed between the start of
// year 0 and the given calendar fields. Fields are not validated; month must
// be within 1-12.
func FieldsToMilliseconds(year, month, day, hour, minute, second int) int64 {
	days := daysBeforeYear(year) + int64(daysBeforeMonth(year, month)) + int64(day-1)
	return days*domain.MillisPerDay +
		int64(hour)*domain.MillisPerHour +
		int64(minute)*domain.MillisPerMinute +
		int64(second)*domain.MillisPerSecond
}

// Days returns the whole days elapsed since the start of year 0.
func Days(ms int64) int64 {
	return ms / domain.MillisPerDay
}

// yearAndDay splits a whole-day count into a year and a 0-based day of that year.
func yearAndDay(days int64) (year int, yday int) {
	if days < 365 {
		return 0, int(days)
	}
	// Everything after year 0 follows the plain Gregorian cycle starting at year 1.
	d := days - 365

	n := d / daysPer400Years
	y := 400 * n
	d -= daysPer400Years * n

	// The last 100-year cycle has one extra leap day, so its final day
	// divides to 4. Cut it back to 3.
	n = d / daysPer100Years
	n -= n >> 2
	y += 100 * n
	d -= daysPer100Years * n

	n = d / daysPer4Years
	y += 4 * n
	d -= daysPer4Years * n

	// Same for the final day of a leap year inside a 4-year cycle.
	n = d / 365
	n -= n >> 2
	y += n
	d -= 365 * n

	return int(y) + 1, int(d)
}

// MillisecondsToYear returns the calendar year containing ms.
func MillisecondsToYear(ms int64) int {
	year, _ := yearAndDay(Days(ms))
	return year
}

// MillisecondsToDayOfYear returns the 1-based day of the year containing ms.
func MillisecondsToDayOfYear(ms int64) int {
	_, yday := yearAndDay(Days(ms))
	return yday + 1
}

// leapBreakpoints and commonBreakpoints hold the last day of year (1-based)
// of each month.
var (
	commonBreakpoints = [12]int{31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334, 365}
	leapBreakpoints   = [12]int{31, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335, 366}
)

// MillisecondsToMonth returns the month (1-12) containing ms.
func MillisecondsToMonth(ms int64) int {
	year, yday := yearAndDay(Days(ms))
	return monthOf(year, yday+1)
}

func monthOf(year, dayOfYear int) int {
	table := &commonBreakpoints
	if hasLeapDay(year) {
		table = &leapBreakpoints
	}
	for i, last := range table {
		if dayOfYear <= last {
			return i + 1
		}
	}
	return 12
}

// MillisecondsToDayOfMonth returns the 1-based day of the month containing ms.
func MillisecondsToDayOfMonth(ms int64) int {
	year, yday := yearAndDay(Days(ms))
	return dayOfMonth(year, yday+1)
}

func dayOfMonth(year, dayOfYear int) int {
	day := dayOfYear
	for month := 1; month < 12; month++ {
		n := DaysInMonth(year, month)
		if day <= n {
			break
		}
		day -= n
	}
	return day
}

// MillisecondsToDayOfWeek returns the weekday of ms, Sunday = 0 through Saturday = 6.
func MillisecondsToDayOfWeek(ms int64) int {
	return int((Days(ms) + domain.ADZeroOffset + 4) % 7)
}

// HourOfDay returns the hour (0-23) of ms.
func HourOfDay(ms int64) int {
	return int(ms / domain.MillisPerHour % domain.HoursPerDay)
}

// MinuteOfHour returns the minute (0-59) of ms.
func MinuteOfHour(ms int64) int {
	return int(ms / domain.MillisPerMinute % domain.MinutesPerHour)
}

// SecondOfMinute returns the second (0-59) of ms.
func SecondOfMinute(ms int64) int {
	return int(ms / domain.MillisPerSecond % domain.SecondsPerMinute)
}

// MillisecondOfSecond returns the millisecond (0-999) of ms.
func MillisecondOfSecond(ms int64) int {
	return int(ms % domain.MillisPerSecond)
}
