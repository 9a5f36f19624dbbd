package bininfo

import (
	"fmt"

	"github.com/pkg/errors"
)

// MalformedError is returned when the metadata dumped for a binary
// doesn't have the expected structure. It means that the check can't
// be trusted, so it's not supposed to be recovered from.
type MalformedError struct {
	Path   string
	Format Format
	// Line is the 1-based line number in the dump, 0 if unknown
	Line   int
	Reason string
}

func (e *MalformedError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("malformed %s metadata for %s (line %d): %s", e.Format, path, e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed %s metadata for %s: %s", e.Format, path, e.Reason)
}

func malformed(format Format, line int, reason string, a ...any) error {
	return errors.WithStack(&MalformedError{
		Format: format,
		Line:   line,
		Reason: fmt.Sprintf(reason, a...),
	})
}

// withPath fills in the path of a MalformedError returned by one of the
// parsers.
func withPath(err error, path string) error {
	var malformedErr *MalformedError
	if errors.As(err, &malformedErr) {
		malformedErr.Path = path
	}
	return err
}

// IsMalformedError returns true if the error or one of the errors it
// wraps is a MalformedError.
func IsMalformedError(err error) bool {
	var malformedErr *MalformedError
	return errors.As(err, &malformedErr)
}
