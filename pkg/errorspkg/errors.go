// Package errorspkg provides the common error kind returned by data access helpers.
package errorspkg

import "errors"

// ErrAmbiguousCommit marks a commit that failed after the statement itself
// succeeded. The state of the transaction on the server is unknown.
var ErrAmbiguousCommit = errors.New("commit failed after execute")

// Error wraps any failure from connection acquisition, statement execution,
// or commit. Every helper method returns this kind on failure.
type Error struct {
	Op  string
	Err error
}

// New returns an Error for the given operation and cause.
func New(op string, err error) *Error {
	return &Error{Op: op, Err: err}
}

func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap preserves the original cause for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}
