package host

import "errors"

var (
	// ErrAlreadyRunning indicates a start request while a server is running.
	ErrAlreadyRunning = errors.New("command server is already running")
	// ErrAddressInUse indicates that the endpoint is bound by another listener.
	ErrAddressInUse = errors.New("address already in use")
)
