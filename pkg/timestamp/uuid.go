package timestamp

import (
	"fmt"

	"github.com/google/uuid"
)

// FromUUID returns the creation time embedded in a time-based UUID
// (versions 1, 6 and 7), truncated to the millisecond.
func FromUUID(id uuid.UUID) (CalendarInstant, error) {
	switch v := id.Version(); v {
	case 1, 6, 7:
	default:
		return CalendarInstant{}, fmt.Errorf("uuid %s version %d: %w", id, v, ErrNotTimeBased)
	}
	sec, nsec := id.Time().UnixTime()
	return FromUnixMilliseconds(sec*1_000 + nsec/1_000_000)
}

// ParseUUID parses s and returns its creation time, see FromUUID.
func ParseUUID(s string) (CalendarInstant, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return CalendarInstant{}, wrapInput("uuid", s, err)
	}
	return FromUUID(id)
}
