package bincheck

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotFound is matched by the error returned when a library can't be
// located on the search path or in the stub directory.
var ErrNotFound = errors.New("library not found")

type LibraryNotFoundError struct {
	Name string
}

func (e *LibraryNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNotFound.Error(), e.Name)
}

func (e *LibraryNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnsupportedError is returned for library names and search path
// entries which can't be resolved statically, like names containing
// unexpanded dynamic linker variables ($ORIGIN, $LIB, ...). In contrast
// to a missing library this aborts the check, since it can't be
// trusted anymore.
type UnsupportedError struct {
	Name   string
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported library path %q: %s", e.Name, e.Reason)
}

func IsUnsupportedError(err error) bool {
	var unsupportedErr *UnsupportedError
	return errors.As(err, &unsupportedErr)
}

func notFound(name string) error {
	return errors.WithStack(&LibraryNotFoundError{Name: name})
}

func unsupported(name, reason string) error {
	return errors.WithStack(&UnsupportedError{Name: name, Reason: reason})
}
