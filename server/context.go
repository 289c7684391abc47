package server

import (
	"context"

	"github.com/viant/jsonrpc"
)

type activeContext struct {
	context.Context
	context.CancelFunc
	method string
}

func newActiveContext(ctx context.Context, cancel context.CancelFunc, request *jsonrpc.Request) (*activeContext, context.Context) {
	return &activeContext{Context: ctx, CancelFunc: cancel, method: request.Method}, ctx
}

type loggerKey struct{}

func withLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFrom returns the session logger of a request context, nil outside a request
func LoggerFrom(ctx context.Context) *Logger {
	logger, _ := ctx.Value(loggerKey{}).(*Logger)
	return logger
}
