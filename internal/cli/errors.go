package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/mdp/internal/config"
	"github.com/roach88/mdp/internal/defs"
	"github.com/roach88/mdp/internal/mdp"
	"github.com/roach88/mdp/internal/warn"
)

// Error code constants, shared by all commands.
const (
	ErrCodeGeneric       = "E001" // Generic/unknown error
	ErrCodeReadFailed    = "E002" // Input file unreadable
	ErrCodeInputErrors   = "E003" // Errors recorded in the input file
	ErrCodeTooManyWarns  = "E004" // Warning count above the limit
	ErrCodeNotFound      = "E005" // Path not found
	ErrCodeInvalidDefs   = "E006" // Definitions file invalid
	ErrCodeWriteFailed   = "E007" // File write error
	ErrCodeInvalidConfig = "E008" // Config file invalid
	ErrCodeInvalidFlag   = "E009" // Bad flag value
)

// errorCode maps an error from the library packages to a CLI error code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, mdp.ErrWrite):
		return ErrCodeWriteFailed
	case errors.Is(err, os.ErrNotExist), errors.Is(err, config.ErrConfigFileNotFound):
		return ErrCodeNotFound
	case errors.Is(err, mdp.ErrOpen), errors.Is(err, mdp.ErrRead):
		return ErrCodeReadFailed
	case errors.Is(err, warn.ErrInputErrors):
		return ErrCodeInputErrors
	case errors.Is(err, warn.ErrTooManyWarnings):
		return ErrCodeTooManyWarns
	case errors.Is(err, defs.ErrInvalidDefs):
		return ErrCodeInvalidDefs
	case errors.Is(err, config.ErrConfigInvalid), errors.Is(err, config.ErrConfigFileRead):
		return ErrCodeInvalidConfig
	default:
		return ErrCodeGeneric
	}
}

// exitCodeFor returns ExitFailure for problems in the input and
// ExitCommandError for everything else.
func exitCodeFor(code string) int {
	switch code {
	case ErrCodeInputErrors, ErrCodeTooManyWarns:
		return ExitFailure
	default:
		return ExitCommandError
	}
}

// fail reports err through the formatter and returns the matching
// ExitError.
func fail(f *OutputFormatter, err error) error {
	code := errorCode(err)
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(exitCodeFor(code), code, err)
}

// failFlag reports a bad flag value.
func failFlag(f *OutputFormatter, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	_ = f.Error(ErrCodeInvalidFlag, msg, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", ErrCodeInvalidFlag, msg))
}
