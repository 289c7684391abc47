package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/viant/houdinimcp/command"
	"github.com/viant/houdinimcp/internal/logging"
	"github.com/viant/houdinimcp/protocol"
)

// DefaultTimeout bounds a single command round trip
const DefaultTimeout = 15 * time.Second

// Relay sends commands to the host over a single reusable connection, one at a time.
// A connection that failed, timed out or was abandoned is closed and never reused.
type Relay struct {
	mux      sync.Mutex
	endpoint string
	timeout  time.Duration
	maxSize  int
	dialer   net.Dialer
	conn     net.Conn
	encoder  *protocol.Encoder
	decoder  *protocol.Decoder
	logger   zerolog.Logger
}

// Endpoint returns the host endpoint
func (r *Relay) Endpoint() string {
	return r.endpoint
}

// Invoke sends a command and returns its result
func (r *Relay) Invoke(ctx context.Context, commandType string, params map[string]any) (any, error) {
	return r.Send(ctx, protocol.NewCommand(commandType, params))
}

// Send sends cmd and waits for the response. An error response is returned as
// *CommandError, a missing response as ErrTimeout and a failed connect as ErrUnreachable.
func (r *Relay) Send(ctx context.Context, cmd *protocol.Command) (any, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deadline := time.Now().Add(r.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := r.connect(ctx, deadline); err != nil {
		return nil, err
	}
	conn := r.conn
	if err := conn.SetDeadline(deadline); err != nil {
		r.discard()
		return nil, fmt.Errorf("connection to Houdini lost: %w", err)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	r.logger.Debug().Str("command", cmd.Type).Msg("sending command")
	if err := r.encoder.Encode(cmd); err != nil {
		if errors.Is(err, protocol.ErrProtocol) {
			return nil, fmt.Errorf("failed to send %v: %w", cmd.Type, err)
		}
		return nil, r.fail(ctx, cmd, err)
	}
	response, err := r.decoder.DecodeResponse()
	if err != nil {
		return nil, r.fail(ctx, cmd, err)
	}
	if !response.IsOK() {
		return nil, &CommandError{Command: cmd.Type, Message: response.Message}
	}
	return response.Result, nil
}

// fail discards the connection and classifies err
func (r *Relay) fail(ctx context.Context, cmd *protocol.Command, err error) error {
	r.discard()
	if ctxErr := ctx.Err(); ctxErr != nil {
		r.logger.Debug().Str("command", cmd.Type).Msg("command abandoned")
		return ctxErr
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && !time.Now().Before(ctxDeadline) {
		return context.DeadlineExceeded
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		r.logger.Warn().Str("command", cmd.Type).Dur("timeout", r.timeout).Msg("command timed out")
		return fmt.Errorf("%w: no response to %v within %v", ErrTimeout, cmd.Type, r.timeout)
	}
	r.logger.Warn().Str("command", cmd.Type).Err(err).Msg("command failed")
	if errors.Is(err, protocol.ErrProtocol) {
		return fmt.Errorf("invalid response from Houdini: %w", err)
	}
	return fmt.Errorf("connection to Houdini lost: %w", err)
}

func (r *Relay) connect(ctx context.Context, deadline time.Time) error {
	if r.conn != nil {
		if r.alive(r.conn) {
			return nil
		}
		r.logger.Debug().Msg("reconnecting, previous connection was closed by the host")
		r.discard()
	}
	dialCtx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()
	conn, err := r.dialer.DialContext(dialCtx, "tcp", r.endpoint)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w at %v: %v; start the command server in Houdini and try again", ErrUnreachable, r.endpoint, err)
	}
	r.logger.Info().Str("endpoint", r.endpoint).Msg("connected to Houdini")
	r.conn = conn
	r.encoder = protocol.NewEncoder(conn, r.maxSize)
	r.decoder = protocol.NewDecoder(conn, r.maxSize)
	return nil
}

// alive reports whether an idle connection is still open. Any byte or error
// other than a read timeout means the connection cannot carry a new exchange.
func (r *Relay) alive(conn net.Conn) bool {
	if err := conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return false
	}
	var buf [1]byte
	_, err := conn.Read(buf[:])
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (r *Relay) discard() {
	if r.conn == nil {
		return
	}
	_ = r.conn.Close()
	r.conn, r.encoder, r.decoder = nil, nil, nil
}

// Describe returns the commands served by the host
func (r *Relay) Describe(ctx context.Context) ([]*command.Spec, error) {
	result, err := r.Invoke(ctx, command.DescribeCommand, nil)
	if err != nil {
		return nil, err
	}
	data, err := protocol.Marshal(result)
	if err != nil {
		return nil, err
	}
	described := struct {
		Commands []*command.Spec `json:"commands"`
	}{}
	if err = protocol.Unmarshal(data, &described); err != nil {
		return nil, fmt.Errorf("invalid %v result: %w", command.DescribeCommand, err)
	}
	return described.Commands, nil
}

// Ping checks that the host accepts connections
func (r *Relay) Ping(ctx context.Context) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	return r.connect(ctx, time.Now().Add(r.timeout))
}

// Close closes the connection
func (r *Relay) Close() error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.discard()
	return nil
}

// RelayOption configures a relay
type RelayOption func(r *Relay)

// WithTimeout sets the round trip timeout
func WithTimeout(timeout time.Duration) RelayOption {
	return func(r *Relay) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// WithMaxMessageSize caps messages in both directions
func WithMaxMessageSize(size int) RelayOption {
	return func(r *Relay) {
		r.maxSize = size
	}
}

// WithRelayLogger sets the relay logger
func WithRelayLogger(logger zerolog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

// NewRelay creates a relay for endpoint, the connection is established on first use
func NewRelay(endpoint string, options ...RelayOption) *Relay {
	ret := &Relay{endpoint: endpoint, timeout: DefaultTimeout, logger: logging.Logger("bridge")}
	for _, option := range options {
		option(ret)
	}
	return ret
}
