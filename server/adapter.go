package server

import (
	"context"
	"encoding/json"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Adapter calls a Handler in process, it is used to exercise a Toolset without a transport
type Adapter struct {
	handler *Handler
}

func (a *Adapter) call(ctx context.Context, method string, params interface{}, result interface{}) error {
	req, err := jsonrpc.NewRequest(method, params)
	if err != nil {
		return err
	}
	response := &jsonrpc.Response{}
	a.handler.Serve(ctx, req, response)
	if response.Error != nil {
		return response.Error
	}
	return json.Unmarshal(response.Result, result)
}

// Initialize initializes the session and confirms it with notifications/initialized
func (a *Adapter) Initialize(ctx context.Context) (*schema.InitializeResult, error) {
	var result schema.InitializeResult
	if err := a.call(ctx, schema.MethodInitialize, &schema.InitializeRequestParams{ProtocolVersion: schema.LatestProtocolVersion}, &result); err != nil {
		return nil, err
	}
	a.handler.OnNotification(ctx, &jsonrpc.Notification{Method: schema.MethodNotificationInitialized})
	return &result, nil
}

// Ping pings the server
func (a *Adapter) Ping(ctx context.Context) error {
	var result schema.PingResult
	return a.call(ctx, schema.MethodPing, map[string]interface{}{}, &result)
}

// ListTools lists tools
func (a *Adapter) ListTools(ctx context.Context) (*schema.ListToolsResult, error) {
	var result schema.ListToolsResult
	if err := a.call(ctx, schema.MethodToolsList, map[string]interface{}{}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CallTool calls a tool
func (a *Adapter) CallTool(ctx context.Context, name string, arguments map[string]interface{}) (*schema.CallToolResult, error) {
	var result schema.CallToolResult
	params := &schema.CallToolRequestParams{Name: name, Arguments: arguments}
	if err := a.call(ctx, schema.MethodToolsCall, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetLevel sets the logging level
func (a *Adapter) SetLevel(ctx context.Context, level schema.LoggingLevel) error {
	var result map[string]interface{}
	return a.call(ctx, schema.MethodLoggingSetLevel, &setLevelParams{Level: level}, &result)
}

// Handler returns the underlying handler
func (a *Adapter) Handler() *Handler {
	return a.handler
}

// AsClient returns an in process client, notifier receives server notifications
func (s *Server) AsClient(ctx context.Context, notifier transport.Notifier) *Adapter {
	return &Adapter{handler: s.newHandler(ctx, notifier)}
}
