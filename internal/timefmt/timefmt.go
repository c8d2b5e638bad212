// Package timefmt renders calendar and clock fields through a template of
// two-character tokens:
//
//	%Y  year, unpadded
//	%m  month, 2 digits
//	%D  day count, unpadded; removed (and the result trimmed) when zero
//	%d  day of month, 2 digits
//	%H  hour, 2 digits
//	%M  minute, 2 digits
//	%S  second, 2 digits
//	%f  sub-second fraction, 3 or 9 digits depending on Resolution
//
// Any other text, including unknown tokens, is copied verbatim.
package timefmt

import (
	"strconv"
	"strings"
)

// Resolution selects the width of the %f fraction.
type Resolution int

const (
	Millisecond Resolution = iota
	Nanosecond
)

// Digits returns the number of %f digits rendered at r.
func (r Resolution) Digits() int {
	if r == Nanosecond {
		return 9
	}
	return 3
}

func (r Resolution) String() string {
	if r == Nanosecond {
		return "nanosecond"
	}
	return "millisecond"
}

// Source supplies the fields a template may reference. Render only calls the
// accessors whose tokens appear in the template.
type Source interface {
	Year() int
	Month() int
	// DayCount is the calendar day-of-epoch for instants and the whole
	// elapsed days for durations.
	DayCount() uint64
	DayOfMonth() int
	Hour() int
	Minute() int
	Second() int
	// Fraction is the sub-second remainder in units of the Resolution.
	Fraction() uint64
}

// Render substitutes every token of template with the matching field of src.
func Render(src Source, res Resolution, template string) string {
	out := template
	if strings.Contains(out, "%Y") {
		out = strings.ReplaceAll(out, "%Y", strconv.Itoa(src.Year()))
	}
	if strings.Contains(out, "%m") {
		out = strings.ReplaceAll(out, "%m", pad2(src.Month()))
	}
	if strings.Contains(out, "%D") {
		if days := src.DayCount(); days > 0 {
			out = strings.ReplaceAll(out, "%D", strconv.FormatUint(days, 10))
		} else {
			out = strings.TrimSpace(strings.ReplaceAll(out, "%D", ""))
		}
	}
	if strings.Contains(out, "%d") {
		out = strings.ReplaceAll(out, "%d", pad2(src.DayOfMonth()))
	}
	if strings.Contains(out, "%H") {
		out = strings.ReplaceAll(out, "%H", pad2(src.Hour()))
	}
	if strings.Contains(out, "%M") {
		out = strings.ReplaceAll(out, "%M", pad2(src.Minute()))
	}
	if strings.Contains(out, "%S") {
		out = strings.ReplaceAll(out, "%S", pad2(src.Second()))
	}
	if strings.Contains(out, "%f") {
		out = strings.ReplaceAll(out, "%f", padN(src.Fraction(), res.Digits()))
	}
	return out
}

func pad2(v int) string {
	if v >= 0 && v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}

// padN left-pads v with zeros to width digits.
func padN(v uint64, width int) string {
	s := strconv.FormatUint(v, 10)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
