package server

import (
	"context"
	"errors"

	"github.com/viant/houdinimcp/internal/collection"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Toolset provides tools served by the MCP server
type Toolset interface {
	Tools() []schema.Tool
	Call(ctx context.Context, name string, arguments map[string]interface{}) (*schema.CallToolResult, *jsonrpc.Error)
}

// Server represents MCP protocol handler
type Server struct {
	info            schema.Implementation
	instructions    *string
	protocolVersion string
	loggerName      string
	toolset         Toolset
	stdioServer
}

// NewHandler creates a new handler instance
func (s *Server) NewHandler(ctx context.Context, transport transport.Transport) transport.Handler {
	return s.newHandler(ctx, transport)
}

func (s *Server) newHandler(ctx context.Context, notifier transport.Notifier) *Handler {
	ret := &Handler{
		Server:         s,
		Notifier:       notifier,
		activeContexts: collection.NewSyncMap[int, *activeContext](),
	}
	ret.Logger = NewLogger(s.loggerName, notifier)
	return ret
}

// New creates a new Server instance
func New(options ...Option) (*Server, error) {
	s := &Server{
		info: schema.Implementation{
			Name:    "houdini-mcp",
			Version: "0.1",
		},
		loggerName:      "houdini",
		protocolVersion: schema.LatestProtocolVersion,
	}
	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}
	if s.toolset == nil {
		return nil, errors.New("no toolset specified")
	}
	return s, nil
}
