package host

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/houdinimcp/config"
	"github.com/viant/houdinimcp/protocol"
)

// Options represents server options
type Options struct {
	IdleTimeout    time.Duration
	GracePeriod    time.Duration
	MaxMessageSize int
	Logger         *zerolog.Logger
}

// Option configures server options
type Option func(o *Options)

// WithIdleTimeout closes sessions without a command for d, zero disables the timeout
func WithIdleTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.IdleTimeout = d
	}
}

// WithGracePeriod bounds how long Stop waits for in-flight commands
func WithGracePeriod(d time.Duration) Option {
	return func(o *Options) {
		o.GracePeriod = d
	}
}

// WithMaxMessageSize caps incoming and outgoing messages
func WithMaxMessageSize(size int) Option {
	return func(o *Options) {
		o.MaxMessageSize = size
	}
}

// WithLogger sets server logger
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = &logger
	}
}

// WithConfig applies host configuration
func WithConfig(cfg *config.Host) Option {
	return func(o *Options) {
		o.IdleTimeout = cfg.IdleTimeout()
		o.GracePeriod = cfg.GracePeriod()
		o.MaxMessageSize = cfg.MaxMessageSize
	}
}

func newOptions(options []Option) *Options {
	ret := &Options{
		IdleTimeout:    config.DefaultIdleTimeoutMs * time.Millisecond,
		GracePeriod:    config.DefaultGracePeriodMs * time.Millisecond,
		MaxMessageSize: protocol.DefaultMaxMessageSize,
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}
