package domain

import "time"

// Unit sizes. Every conversion in the module derives from these.
const (
	NanosPerMicro  = 1_000
	NanosPerMilli  = 1_000_000
	NanosPerSecond = 1_000_000_000
	NanosPerMinute = 60 * NanosPerSecond
	NanosPerHour   = 60 * NanosPerMinute
	NanosPerDay    = 24 * NanosPerHour

	MillisPerSecond = 1_000
	MillisPerMinute = 60 * MillisPerSecond
	MillisPerHour   = 60 * MillisPerMinute
	MillisPerDay    = 24 * MillisPerHour

	SecondsPerMinute = 60
	MinutesPerHour   = 60
	HoursPerDay      = 24
)

// EpochOffset is the number of milliseconds between the start of year 0 and
// the Unix epoch (1970-01-01T00:00:00). Internal storage is always year-0
// anchored; Unix-facing constructors and accessors add or subtract this.
const EpochOffset int64 = 62_167_132_800_000

// ADZeroOffset calibrates day 0 (start of year 0) against a known weekday so
// that (days + ADZeroOffset + 4) % 7 yields Sunday = 0.
const ADZeroOffset = 3

// Default format templates.
const (
	DateTimeLayout = "%Y-%m-%d %H:%M:%S.%f"
	DurationLayout = "%D %H:%M:%S.%f"
)

// CLI defaults, overridable via configuration.
const (
	DefaultWatchInterval = time.Second
	ServiceName          = "tsctl"
	ServiceVersion       = "0.1.0"
)

// ShutdownOTELTimeout bounds the final flush of spans and metrics.
const ShutdownOTELTimeout = 5 * time.Second
