package protocol

import (
	"encoding/json"
	"fmt"
)

// Status represents a response outcome
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
	// StatusSuccess is emitted by legacy host plugins; it is read as StatusOK.
	StatusSuccess Status = "success"
)

// Command represents a named host command with handler specific parameters
type Command struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params"`
}

// NewCommand creates a command
func NewCommand(commandType string, params map[string]any) *Command {
	if params == nil {
		params = map[string]any{}
	}
	return &Command{Type: commandType, Params: params}
}

// Response represents the terminal outcome of a single command.
// Result is only meaningful when Status is ok, Message only when Status is error.
type Response struct {
	Status  Status `json:"status"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK returns a successful response
func OK(result any) *Response {
	return &Response{Status: StatusOK, Result: result}
}

// Errorf returns an error response
func Errorf(format string, args ...any) *Response {
	return &Response{Status: StatusError, Message: fmt.Sprintf(format, args...)}
}

// Failure returns an error response carrying message verbatim
func Failure(message string) *Response {
	if message == "" {
		message = "unknown error"
	}
	return &Response{Status: StatusError, Message: message}
}

// IsOK returns true for ok (or legacy success) responses
func (r *Response) IsOK() bool {
	return r.Status == StatusOK || r.Status == StatusSuccess
}

// Validate checks that exactly one of result/message is populated
func (r *Response) Validate() error {
	switch r.Status {
	case StatusOK, StatusSuccess:
		if r.Message != "" {
			return fmt.Errorf("ok response carries message: %q", r.Message)
		}
	case StatusError:
		if r.Message == "" {
			return fmt.Errorf("error response without message")
		}
		if r.Result != nil {
			return fmt.Errorf("error response carries result")
		}
	default:
		return fmt.Errorf("unsupported status: %q", r.Status)
	}
	return nil
}

// MarshalJSON always emits result for ok responses, even when it is null
func (r Response) MarshalJSON() ([]byte, error) {
	if r.Status == StatusError {
		return json.Marshal(struct {
			Status  Status `json:"status"`
			Message string `json:"message"`
		}{r.Status, r.Message})
	}
	return json.Marshal(struct {
		Status Status `json:"status"`
		Result any    `json:"result"`
	}{r.Status, r.Result})
}
