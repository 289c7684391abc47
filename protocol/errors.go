package protocol

import (
	"errors"
	"fmt"
)

// ErrProtocol is matched by every malformed, truncated or oversized frame.
var ErrProtocol = errors.New("protocol error")

var errMessageTooLarge = errors.New("message exceeds size limit")

// Error represents a connection fatal framing or decoding failure
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("protocol error: %s", e.Reason)
	}
	return fmt.Sprintf("protocol error: %s: %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports ErrProtocol so callers can use errors.Is without unwrapping
func (e *Error) Is(target error) bool {
	return target == ErrProtocol
}

func newError(reason string, err error) *Error {
	return &Error{Reason: reason, Err: err}
}
