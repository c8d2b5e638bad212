package timestamp

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// JSON shapes. Each value is an object holding its single stored integer.
type (
	instantJSON struct {
		Milliseconds *int64 `json:"milliseconds"`
	}
	elapsedJSON struct {
		Milliseconds *uint64 `json:"milliseconds"`
	}
	preciseJSON struct {
		Nanoseconds json.RawMessage `json:"nanoseconds"`
	}
)

func wrapInput(what, raw string, err error) error {
	return fmt.Errorf("parse %s %q: %w: %w", what, raw, ErrInvalidInput, err)
}

func missingField(what, field string) error {
	return fmt.Errorf("decode %s: missing %q: %w", what, field, ErrInvalidInput)
}

// MarshalJSON encodes c as {"milliseconds":N}.
func (c CalendarInstant) MarshalJSON() ([]byte, error) {
	return json.Marshal(instantJSON{Milliseconds: &c.ms})
}

// UnmarshalJSON decodes {"milliseconds":N}, rejecting negative values.
func (c *CalendarInstant) UnmarshalJSON(data []byte) error {
	var wire instantJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return wrapInput("calendar instant", string(data), err)
	}
	if wire.Milliseconds == nil {
		return missingField("calendar instant", "milliseconds")
	}
	ci, err := FromMilliseconds(*wire.Milliseconds)
	if err != nil {
		return err
	}
	*c = ci
	return nil
}

// Value implements driver.Valuer, storing milliseconds since the start of year 0.
func (c CalendarInstant) Value() (driver.Value, error) {
	return c.ms, nil
}

// Scan implements sql.Scanner for integer and decimal-text columns.
func (c *CalendarInstant) Scan(src any) error {
	ms, err := scanInt64("calendar instant", src)
	if err != nil {
		return err
	}
	ci, err := FromMilliseconds(ms)
	if err != nil {
		return err
	}
	*c = ci
	return nil
}

// MarshalJSON encodes e as {"milliseconds":N}.
func (e ElapsedTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(elapsedJSON{Milliseconds: &e.ms})
}

// UnmarshalJSON decodes {"milliseconds":N}.
func (e *ElapsedTime) UnmarshalJSON(data []byte) error {
	var wire elapsedJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return wrapInput("elapsed time", string(data), err)
	}
	if wire.Milliseconds == nil {
		return missingField("elapsed time", "milliseconds")
	}
	e.ms = *wire.Milliseconds
	return nil
}

// Value implements driver.Valuer. Durations beyond the int64 range cannot be
// stored in a SQL integer column.
func (e ElapsedTime) Value() (driver.Value, error) {
	if e.ms > math.MaxInt64 {
		return nil, fmt.Errorf("elapsed time %d ms exceeds int64: %w", e.ms, ErrInvalidInput)
	}
	return int64(e.ms), nil
}

// Scan implements sql.Scanner for integer and decimal-text columns.
func (e *ElapsedTime) Scan(src any) error {
	ms, err := scanInt64("elapsed time", src)
	if err != nil {
		return err
	}
	if ms < 0 {
		return fmt.Errorf("elapsed time %d ms: %w", ms, ErrInvalidInput)
	}
	e.ms = uint64(ms)
	return nil
}

// MarshalJSON encodes p as {"nanoseconds":N} with N as a bare decimal of up
// to 39 digits.
func (p PreciseElapsedTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(preciseJSON{Nanoseconds: json.RawMessage(p.ns.String())})
}

// UnmarshalJSON decodes {"nanoseconds":N}. N must be a bare JSON integer;
// quoted, fractional and exponent forms are rejected rather than rounded.
func (p *PreciseElapsedTime) UnmarshalJSON(data []byte) error {
	var wire preciseJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return wrapInput("precise elapsed time", string(data), err)
	}
	if wire.Nanoseconds == nil {
		return missingField("precise elapsed time", "nanoseconds")
	}
	raw := string(wire.Nanoseconds)
	ns, err := parseNanoseconds(raw)
	if err != nil {
		return wrapInput("nanoseconds", raw, err)
	}
	p.ns = ns
	return nil
}

func scanInt64(what string, src any) (int64, error) {
	switch v := src.(type) {
	case int64:
		return v, nil
	case []byte:
		return parseInt64(what, string(v))
	case string:
		return parseInt64(what, v)
	case nil:
		return 0, fmt.Errorf("scan %s: NULL: %w", what, ErrInvalidInput)
	default:
		return 0, fmt.Errorf("scan %s: unsupported type %T: %w", what, src, ErrInvalidInput)
	}
}

func parseInt64(what, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, wrapInput(what, s, err)
	}
	return n, nil
}

var (
	_ json.Marshaler   = CalendarInstant{}
	_ json.Unmarshaler = (*CalendarInstant)(nil)
	_ driver.Valuer    = CalendarInstant{}
	_ sql.Scanner      = (*CalendarInstant)(nil)
	_ json.Marshaler   = ElapsedTime{}
	_ json.Unmarshaler = (*ElapsedTime)(nil)
	_ driver.Valuer    = ElapsedTime{}
	_ sql.Scanner      = (*ElapsedTime)(nil)
	_ json.Marshaler   = PreciseElapsedTime{}
	_ json.Unmarshaler = (*PreciseElapsedTime)(nil)
)
