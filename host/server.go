package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/viant/houdinimcp/command"
	"github.com/viant/houdinimcp/internal/collection"
	"github.com/viant/houdinimcp/internal/logging"
	"github.com/viant/houdinimcp/protocol"
)

// Server accepts TCP sessions and dispatches one command at a time per session.
// A session lasts until the peer closes it, a frame is unusable or the idle
// timeout elapses.
type Server struct {
	dispatcher *command.Dispatcher
	options    *Options
	listener   net.Listener
	sessions   *collection.SyncMap[string, net.Conn]
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closing    atomic.Bool
	stopOnce   sync.Once
	stopErr    error
	logger     zerolog.Logger
}

// Addr returns the listening address
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Sessions returns the number of open sessions
func (s *Server) Sessions() int {
	return s.sessions.Len()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if s.closing.Load() {
				return
			}
			s.logger.Error().Err(err).Msg("accept failed")
			time.Sleep(10 * time.Millisecond)
			continue
		}
		if s.closing.Load() {
			_ = conn.Close()
			return
		}
		id := uuid.NewString()
		s.sessions.Put(id, conn)
		s.wg.Add(1)
		go s.serve(id, conn)
	}
}

func (s *Server) serve(id string, conn net.Conn) {
	defer s.wg.Done()
	defer s.sessions.Delete(id)
	defer conn.Close()
	logger := s.logger.With().Str("session", id).Str("remote", conn.RemoteAddr().String()).Logger()
	logger.Debug().Msg("session opened")
	decoder := protocol.NewDecoder(conn, s.options.MaxMessageSize)
	encoder := protocol.NewEncoder(conn, s.options.MaxMessageSize)
	for {
		if s.options.IdleTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.options.IdleTimeout))
		}
		if s.closing.Load() {
			return
		}
		cmd, err := decoder.DecodeCommand()
		if err != nil {
			s.logReadError(logger, err)
			return
		}
		_ = conn.SetReadDeadline(time.Time{})
		response := s.dispatcher.Dispatch(s.ctx, cmd)
		if err = s.write(encoder, response); err != nil {
			logger.Warn().Err(err).Str("command", cmd.Type).Msg("failed to write response")
			return
		}
	}
}

// write sends response, a response that cannot be encoded is replaced by an error response
func (s *Server) write(encoder *protocol.Encoder, response *protocol.Response) error {
	err := encoder.Encode(response)
	if errors.Is(err, protocol.ErrProtocol) {
		return encoder.Encode(protocol.Errorf("Failed to encode response: %v", err))
	}
	return err
}

func (s *Server) logReadError(logger zerolog.Logger, err error) {
	var netErr net.Error
	switch {
	case errors.Is(err, io.EOF):
		logger.Debug().Msg("session closed by peer")
	case errors.Is(err, protocol.ErrProtocol):
		logger.Warn().Err(err).Msg("dropping session")
	case errors.As(err, &netErr) && netErr.Timeout():
		if s.closing.Load() {
			logger.Debug().Msg("session closed by shutdown")
			return
		}
		logger.Debug().Msg("session idle timeout")
	default:
		logger.Warn().Err(err).Msg("session read failed")
	}
}

// Stop closes the listener and idle sessions, then waits up to the grace period
// for in-flight commands before closing the remaining sessions. Stop is idempotent.
func (s *Server) Stop() error {
	s.stopOnce.Do(func() {
		s.closing.Store(true)
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.stopErr = err
		}
		now := time.Now()
		s.sessions.Range(func(id string, conn net.Conn) bool {
			_ = conn.SetReadDeadline(now)
			return true
		})
		done := make(chan struct{})
		go func() {
			s.wg.Wait()
			close(done)
		}()
		timer := time.NewTimer(s.options.GracePeriod)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			s.logger.Warn().Int("sessions", s.sessions.Len()).Msg("grace period elapsed, closing sessions")
			s.sessions.Range(func(id string, conn net.Conn) bool {
				_ = conn.Close()
				return true
			})
			s.cancel()
			<-done
		}
		s.cancel()
		s.logger.Info().Msg("command server stopped")
	})
	return s.stopErr
}

// Listen binds endpoint and starts accepting sessions in the background
func Listen(endpoint string, dispatcher *command.Dispatcher, options ...Option) (*Server, error) {
	opts := newOptions(options)
	listener, err := net.Listen("tcp", endpoint)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return nil, fmt.Errorf("failed to listen on %v: %w", endpoint, ErrAddressInUse)
		}
		return nil, fmt.Errorf("failed to listen on %v: %w", endpoint, err)
	}
	logger := logging.Logger("host")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	ctx, cancel := context.WithCancel(context.Background())
	ret := &Server{
		dispatcher: dispatcher,
		options:    opts,
		listener:   listener,
		sessions:   collection.NewSyncMap[string, net.Conn](),
		ctx:        ctx,
		cancel:     cancel,
		logger:     logger,
	}
	ret.wg.Add(1)
	go ret.acceptLoop()
	logger.Info().Str("addr", listener.Addr().String()).Msg("command server listening")
	return ret, nil
}
