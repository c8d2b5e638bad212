package domain

import "errors"

// Sentinel errors for domain error conditions.
// Use errors.Is() for matching - never compare error strings.
var (
	// Calendar errors
	ErrNegativeCalendarValue = errors.New("calendar value before start of year 0")
	ErrFieldOutOfRange       = errors.New("calendar field out of range")

	// Input errors
	ErrInvalidInput = errors.New("invalid input")
	ErrNotTimeBased = errors.New("UUID version carries no timestamp")

	// Configuration errors
	ErrConfigRequired = errors.New("required configuration key missing")
)

// constructionErrors enumerates errors raised while building a value from
// caller-supplied input. None of them succeed on retry.
var constructionErrors = []error{
	ErrNegativeCalendarValue,
	ErrFieldOutOfRange,
	ErrInvalidInput,
	ErrNotTimeBased,
}

// IsConstructionError returns true if the error was raised while building a
// value from caller input, as opposed to environment or configuration failures.
func IsConstructionError(err error) bool {
	for _, target := range constructionErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
