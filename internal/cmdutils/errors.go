package cmdutils

import (
	"github.com/pkg/errors"
)

// ErrChecksFailed is returned if any of the checked binaries has a
// missing library or unresolved symbols. The findings were already
// printed, so it's always wrapped in a SilentError.
var ErrChecksFailed = errors.New("some binaries failed the check")

// SilentError indicates that the error message should not be printed
// when the error is handled, because it was already printed.
type SilentError struct {
	err error
}

func (e SilentError) Error() string {
	return e.err.Error()
}

func (e SilentError) Unwrap() error {
	return e.err
}

// WrapSilentError wraps an existing error into a SilentError to avoid
// having it printed to stderr.
func WrapSilentError(err error) error {
	return &SilentError{err}
}

func IsSilentError(err error) bool {
	var silentErr *SilentError
	return errors.As(err, &silentErr)
}

// IncorrectUsageError indicates that the command was used incorrectly,
// the usage message is printed along with the error.
type IncorrectUsageError struct {
	err error
}

func (e IncorrectUsageError) Error() string {
	return e.err.Error()
}

func (e IncorrectUsageError) Unwrap() error {
	return e.err
}

func WrapIncorrectUsageError(err error) error {
	return &IncorrectUsageError{err}
}

func IsIncorrectUsageError(err error) bool {
	var usageErr *IncorrectUsageError
	return errors.As(err, &usageErr)
}
