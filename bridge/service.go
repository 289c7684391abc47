package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/viant/houdinimcp/catalog"
	"github.com/viant/houdinimcp/command"
	"github.com/viant/houdinimcp/internal/logging"
	"github.com/viant/houdinimcp/schema"
	"github.com/viant/houdinimcp/server"
	"github.com/viant/jsonrpc"
	mcpschema "github.com/viant/mcp-protocol/schema"
)

// Service exposes host commands as MCP tools, each call is relayed as one command
type Service struct {
	relay  *Relay
	mux    sync.RWMutex
	specs  []*command.Spec
	tools  []mcpschema.Tool
	logger zerolog.Logger
}

// Tools returns tool descriptors
func (s *Service) Tools() []mcpschema.Tool {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.tools
}

// Refresh replaces the tools with the commands the host serves. On error the
// current tools are kept.
func (s *Service) Refresh(ctx context.Context) error {
	described, err := s.relay.Describe(ctx)
	if err != nil {
		return err
	}
	specs := make([]*command.Spec, 0, len(described))
	for _, spec := range described {
		if spec.Name != command.DescribeCommand {
			specs = append(specs, spec)
		}
	}
	s.setSpecs(specs)
	s.logger.Info().Int("tools", len(specs)).Msg("tools loaded from Houdini")
	return nil
}

func (s *Service) setSpecs(specs []*command.Spec) {
	tools := schema.Tools(specs)
	s.mux.Lock()
	defer s.mux.Unlock()
	s.specs, s.tools = specs, tools
}

func (s *Service) lookup(name string) *command.Spec {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return catalog.Lookup(s.specs, name)
}

// Call relays a tool call to the host
func (s *Service) Call(ctx context.Context, name string, arguments map[string]interface{}) (*mcpschema.CallToolResult, *jsonrpc.Error) {
	if s.lookup(name) == nil {
		return nil, schema.NewUnknownTool(name)
	}
	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	result, err := s.relay.Invoke(ctx, name, arguments)
	if err != nil {
		s.report(ctx, name, err)
		return errorResult(err.Error()), nil
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return errorResult("Failed to encode result: " + err.Error()), nil
	}
	ret := &mcpschema.CallToolResult{Content: []mcpschema.CallToolResultContentElem{mcpschema.TextContent{Type: "text", Text: string(data)}}}
	if structured, ok := result.(map[string]interface{}); ok {
		ret.StructuredContent = structured
	}
	return ret, nil
}

func (s *Service) report(ctx context.Context, name string, err error) {
	var commandErr *CommandError
	event := s.logger.Warn()
	if errors.As(err, &commandErr) {
		event = s.logger.Info()
	}
	event.Str("tool", name).Err(err).Msg("tool call failed")
	if logger := server.LoggerFrom(ctx); logger != nil {
		_ = logger.Warning(ctx, map[string]interface{}{"tool": name, "error": err.Error()})
	}
}

func errorResult(text string) *mcpschema.CallToolResult {
	isError := true
	return &mcpschema.CallToolResult{
		IsError: &isError,
		Content: []mcpschema.CallToolResultContentElem{mcpschema.TextContent{Type: "text", Text: text}},
	}
}

// NewService creates a service relaying specs through relay, Refresh replaces them with the host's
func NewService(relay *Relay, specs []*command.Spec) *Service {
	ret := &Service{relay: relay, logger: logging.Logger("bridge")}
	ret.setSpecs(specs)
	return ret
}
