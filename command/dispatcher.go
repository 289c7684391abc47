package command

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/viant/houdinimcp/internal/logging"
	"github.com/viant/houdinimcp/protocol"
)

// Dispatcher resolves a command to its handler and runs it through the executor
type Dispatcher struct {
	registry *Registry
	executor Executor
	logger   zerolog.Logger
}

// Option configures a dispatcher
type Option func(d *Dispatcher)

// WithLogger sets the dispatcher logger
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// Registry returns the underlying registry
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch executes a command and always returns a response satisfying the
// status/result/message exclusivity invariant.
func (d *Dispatcher) Dispatch(ctx context.Context, command *protocol.Command) *protocol.Response {
	result, err := d.Execute(ctx, command)
	if err != nil {
		return protocol.Failure(err.Error())
	}
	return protocol.OK(result)
}

// Execute executes a command and returns the handler result or a *Error
func (d *Dispatcher) Execute(ctx context.Context, command *protocol.Command) (any, error) {
	if command == nil {
		return nil, unknownCommand("<nil>")
	}
	registration, ok := d.registry.Lookup(command.Type)
	if !ok {
		d.logger.Warn().Str("command", command.Type).Msg("unknown command")
		return nil, unknownCommand(command.Type)
	}
	params, err := registration.Spec.Validate(command.Params)
	if err != nil {
		d.logger.Warn().Str("command", command.Type).Err(err).Msg("invalid params")
		return nil, err
	}
	d.logger.Debug().Str("command", command.Type).Msg("executing handler")
	result, err := d.executor.Execute(ctx, func(ctx context.Context) (any, error) {
		return invoke(ctx, registration.Handler, params)
	})
	if err != nil {
		var dispatchErr *Error
		if !errors.As(err, &dispatchErr) {
			dispatchErr = executionFailure(err)
		}
		d.logger.Error().Str("command", command.Type).Err(err).Msg("handler failed")
		return nil, dispatchErr
	}
	d.logger.Debug().Str("command", command.Type).Msg("handler execution complete")
	return result, nil
}

// invoke runs handler converting a panic into an execution failure
func invoke(ctx context.Context, handler Handler, params map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = executionFailure(fmt.Errorf("%v", r))
			logger := logging.Logger("command")
			logger.Error().Str("stack", string(debug.Stack())).Msgf("handler panic: %v", r)
		}
	}()
	result, err = handler.Invoke(ctx, params)
	if err != nil {
		var dispatchErr *Error
		if errors.As(err, &dispatchErr) {
			return nil, dispatchErr
		}
		return nil, executionFailure(err)
	}
	return result, nil
}

// NewDispatcher creates a dispatcher, a nil executor runs tasks on a dedicated Worker
func NewDispatcher(registry *Registry, executor Executor, options ...Option) *Dispatcher {
	if executor == nil {
		executor = NewWorker(0)
	}
	ret := &Dispatcher{registry: registry, executor: executor, logger: logging.Logger("command")}
	for _, option := range options {
		option(ret)
	}
	return ret
}
