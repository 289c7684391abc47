package command

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCommand indicates that no handler is registered for a command type.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidParams indicates that command params violate the handler contract.
	ErrInvalidParams = errors.New("invalid params")
	// ErrExecution indicates that a handler failed while touching host state.
	ErrExecution = errors.New("execution failure")
	// ErrFrozen indicates a registration attempt while the registry is frozen.
	ErrFrozen = errors.New("command registry is frozen")
	// ErrExecutorClosed indicates that the executor no longer accepts commands.
	ErrExecutorClosed = errors.New("command executor closed")
)

// Error represents a dispatch failure, Message is reported to the caller verbatim
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func unknownCommand(commandType string) *Error {
	return &Error{Kind: ErrUnknownCommand, Message: fmt.Sprintf("Unknown command type: %v", commandType)}
}

func missingParameter(name string) *Error {
	return &Error{Kind: ErrInvalidParams, Message: fmt.Sprintf("Missing required parameter: %v", name)}
}

func unexpectedParameter(name string) *Error {
	return &Error{Kind: ErrInvalidParams, Message: fmt.Sprintf("Unexpected parameter: %v", name)}
}

func invalidParameter(name string, expected Type) *Error {
	return &Error{Kind: ErrInvalidParams, Message: fmt.Sprintf("Invalid parameter %v: expected %v", name, expected)}
}

func executionFailure(err error) *Error {
	message := err.Error()
	if message == "" {
		message = "handler failed"
	}
	return &Error{Kind: ErrExecution, Message: message, Err: err}
}

// InvalidParamsf lets a handler report a parameter violation it detected itself
func InvalidParamsf(format string, args ...any) error {
	return &Error{Kind: ErrInvalidParams, Message: fmt.Sprintf(format, args...)}
}
