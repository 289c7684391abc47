package bridge

import "errors"

var (
	// ErrTimeout indicates that the host did not answer within the configured timeout.
	ErrTimeout = errors.New("timed out waiting for Houdini")
	// ErrUnreachable indicates that no command server accepted the connection.
	ErrUnreachable = errors.New("Houdini command server is unreachable")
)

// CommandError carries an error response message from the host verbatim
type CommandError struct {
	Command string
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}
