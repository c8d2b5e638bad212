package timestamp

import "github.com/aelexs/timestamp/internal/domain"

// Errors returned by constructors and decoders. Match them with errors.Is.
var (
	ErrNegativeCalendarValue = domain.ErrNegativeCalendarValue
	ErrFieldOutOfRange       = domain.ErrFieldOutOfRange
	ErrInvalidInput          = domain.ErrInvalidInput
	ErrNotTimeBased          = domain.ErrNotTimeBased
)

// Clock supplies the current wall-clock time.
type Clock = domain.Clock

// RealClock reads the system clock.
type RealClock = domain.RealClock

// Default format templates.
const (
	DateTimeLayout = domain.DateTimeLayout
	DurationLayout = domain.DurationLayout
)

// EpochOffset is the number of milliseconds between the start of year 0 and
// the Unix epoch.
const EpochOffset = domain.EpochOffset
