// Package syncerr implements the two-kind error type the core uses:
// a bare Failed(description) for invariant/operation violations, and an
// Io(underlying) wrap for filesystem or subprocess failures.
package syncerr

import "fmt"

// Kind distinguishes the two error shapes.
type Kind int

const (
	Failed Kind = iota
	IO
)

// Error is the shared error type returned by flavours and the FS façade.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case IO:
		return fmt.Sprintf("operation failed because: %s", e.Err)
	default:
		return fmt.Sprintf("operation failed because: %s", e.Msg)
	}
}

// Unwrap exposes the wrapped I/O error to errors.As/errors.Is.
func (e *Error) Unwrap() error { return e.Err }

// Newf builds a Failed-kind error with a formatted description.
func Newf(format string, args ...any) error {
	return &Error{Kind: Failed, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Io-kind error around err. Returns nil if err is nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: IO, Err: err}
}
