package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUsage is wrapped by every UsageError.
var ErrUsage = errors.New("invalid usage")

// UsageError reports a bad invocation.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// Unwrap lets errors.Is(err, ErrUsage) match.
func (e *UsageError) Unwrap() error { return ErrUsage }

// InputError reports an unreadable or malformed input table.
type InputError struct {
	Path string

	// Line is the 1-based line of the problem, 0 when unknown.
	Line int

	Err error
}

func (e *InputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("input %s, line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// MissingColumnError reports a requested language that is not a header column.
type MissingColumnError struct {
	Column string
	Path   string

	// Available lists the language columns the header does have.
	Available []string
}

func (e *MissingColumnError) Error() string {
	msg := fmt.Sprintf("input %s: no column %q in header", e.Path, e.Column)
	if len(e.Available) > 0 {
		msg += " (available: " + strings.Join(e.Available, ", ") + ")"
	}
	return msg
}

// OutputError reports a destination that could not be written.
type OutputError struct {
	Path string
	Err  error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("output %s: %v", e.Path, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }

// ValidationFailedError is returned in strict mode when the document has
// blocking validation issues.
type ValidationFailedError struct {
	Count int
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d blocking issue(s)", e.Count)
}
