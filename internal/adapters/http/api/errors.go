package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrStore      = errors.New("store unavailable")
)

// opError tags an error with the operation that produced it.
type opError struct {
	op  string
	err error
}

func (e *opError) Error() string { return e.op + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }

// NewKind returns an op-tagged sentinel error.
func NewKind(op string, kind error) error {
	return &opError{op: op, err: kind}
}

// WrapKind returns an op-tagged error carrying both the sentinel kind and
// the underlying cause.
func WrapKind(op string, kind, err error) error {
	return &opError{op: op, err: fmt.Errorf("%w: %w", kind, err)}
}

// Wrap tags err with op without changing its kind.
func Wrap(op string, err error) error {
	return &opError{op: op, err: err}
}
