package host

import (
	"net"
	"sync"

	"github.com/viant/houdinimcp/command"
)

// State represents a command server lifecycle state
type State int

const (
	StateNotRunning State = iota
	StateListening
	StateServing
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateListening:
		return "Listening"
	case StateServing:
		return "Serving"
	case StateStopping:
		return "Stopping"
	}
	return "NotRunning"
}

// Lifecycle guards start and stop transitions of a single command server
type Lifecycle struct {
	mux      sync.Mutex
	server   *Server
	registry *command.Registry
	stopping bool
}

// Start binds endpoint and serves commands through dispatcher. The dispatcher
// registry is frozen until Stop.
func (l *Lifecycle) Start(endpoint string, dispatcher *command.Dispatcher, options ...Option) error {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.server != nil {
		return ErrAlreadyRunning
	}
	server, err := Listen(endpoint, dispatcher, options...)
	if err != nil {
		return err
	}
	l.server = server
	l.registry = dispatcher.Registry()
	l.registry.Freeze()
	return nil
}

// Stop stops the running server, it is a no-op when nothing runs
func (l *Lifecycle) Stop() error {
	l.mux.Lock()
	server := l.server
	if server == nil || l.stopping {
		l.mux.Unlock()
		return nil
	}
	l.stopping = true
	l.mux.Unlock()

	err := server.Stop()

	l.mux.Lock()
	defer l.mux.Unlock()
	l.server = nil
	l.stopping = false
	if l.registry != nil {
		l.registry.Thaw()
		l.registry = nil
	}
	return err
}

// State returns the current state
func (l *Lifecycle) State() State {
	l.mux.Lock()
	defer l.mux.Unlock()
	switch {
	case l.server == nil:
		return StateNotRunning
	case l.stopping:
		return StateStopping
	case l.server.Sessions() > 0:
		return StateServing
	}
	return StateListening
}

// Addr returns the listening address, nil when not running
func (l *Lifecycle) Addr() net.Addr {
	l.mux.Lock()
	defer l.mux.Unlock()
	if l.server == nil {
		return nil
	}
	return l.server.Addr()
}

// NewLifecycle creates a lifecycle in the NotRunning state
func NewLifecycle() *Lifecycle {
	return &Lifecycle{}
}

var defaultLifecycle = NewLifecycle()

// Default returns the process wide lifecycle used by host control code
func Default() *Lifecycle {
	return defaultLifecycle
}
