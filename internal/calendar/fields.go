package calendar

// Fields holds every calendar and clock field of a single instant.
type Fields struct {
	Year        int
	Month       int
	Day         int
	Hour        int
	Minute      int
	Second      int
	Millisecond int
	DayOfYear   int
	DayOfWeek   int
}

// Decompose splits ms into calendar fields, sharing one year scan between
// the date fields.
func Decompose(ms int64) Fields {
	year, yday := yearAndDay(Days(ms))
	return Fields{
		Year:        year,
		Month:       monthOf(year, yday+1),
		Day:         dayOfMonth(year, yday+1),
		Hour:        HourOfDay(ms),
		Minute:      MinuteOfHour(ms),
		Second:      SecondOfMinute(ms),
		Millisecond: MillisecondOfSecond(ms),
		DayOfYear:   yday + 1,
		DayOfWeek:   MillisecondsToDayOfWeek(ms),
	}
}

// Milliseconds re-encodes the date and clock fields. DayOfYear and DayOfWeek
// are derived values and ignored.
func (f Fields) Milliseconds() int64 {
	return FieldsToMilliseconds(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second) + int64(f.Millisecond)
}

// Valid reports whether the date and clock fields name a real instant.
func (f Fields) Valid() bool {
	switch {
	case f.Year < 0:
		return false
	case f.Month < 1 || f.Month > 12:
		return false
	case f.Day < 1 || f.Day > DaysInMonth(f.Year, f.Month):
		return false
	case f.Hour < 0 || f.Hour > 23:
		return false
	case f.Minute < 0 || f.Minute > 59:
		return false
	case f.Second < 0 || f.Second > 59:
		return false
	case f.Millisecond < 0 || f.Millisecond > 999:
		return false
	}
	return true
}
