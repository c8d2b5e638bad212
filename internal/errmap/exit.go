// Package errmap maps domain errors onto tsctl process exit codes.
package errmap

import (
	"errors"

	"github.com/aelexs/timestamp/internal/domain"
)

// Exit codes. Values follow sysexits(3) where one fits.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitDataErr  = 65 // EX_DATAERR
	ExitConfig   = 78 // EX_CONFIG
)

// ExitError describes how a failed command should end the process.
type ExitError struct {
	Code      int
	Kind      string
	Message   string
	ShowUsage bool
}

func (e ExitError) Error() string {
	return e.Message
}

type exitMapping struct {
	err       error
	code      int
	kind      string
	showUsage bool
}

// exitMappings maps domain errors to exit codes.
// Order matters: first match wins (via errors.Is).
var exitMappings = []exitMapping{
	// Configuration
	{domain.ErrConfigRequired, ExitConfig, "CONFIG_REQUIRED", false},

	// Values that parsed but do not name a representable instant
	{domain.ErrNegativeCalendarValue, ExitDataErr, "NEGATIVE_CALENDAR_VALUE", false},
	{domain.ErrFieldOutOfRange, ExitDataErr, "FIELD_OUT_OF_RANGE", false},
	{domain.ErrNotTimeBased, ExitDataErr, "NOT_TIME_BASED", false},

	// Malformed command lines
	{domain.ErrInvalidInput, ExitUsage, "INVALID_ARGUMENT", true},
}

// ToExitError converts a domain error to an ExitError.
func ToExitError(err error) ExitError {
	if err == nil {
		return ExitError{Code: ExitOK}
	}
	for _, m := range exitMappings {
		if errors.Is(err, m.err) {
			return ExitError{Code: m.code, Kind: m.kind, Message: err.Error(), ShowUsage: m.showUsage}
		}
	}
	return ExitError{Code: ExitInternal, Kind: "INTERNAL", Message: err.Error()}
}

// ToExitCode extracts just the exit code for a domain error.
func ToExitCode(err error) int {
	return ToExitError(err).Code
}
