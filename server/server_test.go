package server

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

type recordingNotifier struct {
	mux           sync.Mutex
	notifications []*jsonrpc.Notification
}

func (r *recordingNotifier) Notify(ctx context.Context, notification *jsonrpc.Notification) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *recordingNotifier) count() int {
	r.mux.Lock()
	defer r.mux.Unlock()
	return len(r.notifications)
}

func contentText(t *testing.T, elem schema.CallToolResultContentElem) string {
	data, err := json.Marshal(elem)
	require.NoError(t, err)
	content := schema.TextContent{}
	require.NoError(t, json.Unmarshal(data, &content))
	return content.Text
}

type echoToolset struct {
	started chan struct{}
}

func (e *echoToolset) Tools() []schema.Tool {
	return []schema.Tool{{Name: "echo", InputSchema: schema.ToolInputSchema{Type: "object"}}, {Name: "wait", InputSchema: schema.ToolInputSchema{Type: "object"}}}
}

func (e *echoToolset) Call(ctx context.Context, name string, arguments map[string]interface{}) (*schema.CallToolResult, *jsonrpc.Error) {
	switch name {
	case "echo":
		if logger := LoggerFrom(ctx); logger != nil {
			_ = logger.Info(ctx, "echo called")
			_ = logger.Debug(ctx, "echo details")
		}
		data, _ := json.Marshal(arguments)
		return &schema.CallToolResult{Content: []schema.CallToolResultContentElem{schema.TextContent{Type: "text", Text: string(data)}}}, nil
	case "wait":
		close(e.started)
		<-ctx.Done()
		isError := true
		return &schema.CallToolResult{IsError: &isError, Content: []schema.CallToolResultContentElem{schema.TextContent{Type: "text", Text: ctx.Err().Error()}}}, nil
	}
	return nil, jsonrpc.NewInvalidParamsError("Unknown tool: "+name, nil)
}

func newTestServer(t *testing.T) (*Server, *echoToolset) {
	toolset := &echoToolset{started: make(chan struct{})}
	srv, err := New(WithToolset(toolset), WithImplementation(schema.Implementation{Name: "TestServer", Version: "1.0"}), WithInstructions("start the host first"))
	require.NoError(t, err)
	return srv, toolset
}

func TestNew_RequiresToolset(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
}

func TestHandler_Session(t *testing.T) {
	srv, _ := newTestServer(t)
	notifier := &recordingNotifier{}
	ctx := context.Background()
	client := srv.AsClient(ctx, notifier)

	result, err := client.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, "TestServer", result.ServerInfo.Name)
	assert.Equal(t, schema.LatestProtocolVersion, result.ProtocolVersion)
	require.NotNil(t, result.Instructions)
	assert.Equal(t, "start the host first", *result.Instructions)
	assert.True(t, client.Handler().Initialized())
	require.NoError(t, client.Ping(ctx))

	tools, err := client.ListTools(ctx)
	require.NoError(t, err)
	assert.Len(t, tools.Tools, 2)

	callResult, err := client.CallTool(ctx, "echo", map[string]interface{}{"seed": 9007199254740993})
	require.NoError(t, err)
	require.Len(t, callResult.Content, 1)
	assert.JSONEq(t, `{"seed":9007199254740993}`, contentText(t, callResult.Content[0]))
	assert.Equal(t, 0, notifier.count())

	_, err = client.CallTool(ctx, "missing", nil)
	rpcErr, ok := err.(*jsonrpc.Error)
	require.True(t, ok)
	assert.Equal(t, jsonrpc.InvalidParams, rpcErr.Code)
}

func TestHandler_Logging(t *testing.T) {
	srv, _ := newTestServer(t)
	notifier := &recordingNotifier{}
	ctx := context.Background()
	client := srv.AsClient(ctx, notifier)

	assert.Error(t, client.SetLevel(ctx, "verbose"))
	require.NoError(t, client.SetLevel(ctx, LevelInfo))
	_, err := client.CallTool(ctx, "echo", nil)
	require.NoError(t, err)
	require.Equal(t, 1, notifier.count())
	notification := notifier.notifications[0]
	assert.Equal(t, schema.MethodNotificationMessage, notification.Method)
	params := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(notification.Params, &params))
	assert.Equal(t, "info", params["level"])
	assert.Equal(t, "echo called", params["data"])

	require.NoError(t, client.SetLevel(ctx, LevelDebug))
	_, err = client.CallTool(ctx, "echo", nil)
	require.NoError(t, err)
	assert.Equal(t, 3, notifier.count())
}

func TestHandler_UnknownMethod(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.NewHandler(context.Background(), nil)
	request, err := jsonrpc.NewRequest("resources/list", map[string]interface{}{})
	require.NoError(t, err)
	response := &jsonrpc.Response{}
	handler.Serve(context.Background(), request, response)
	require.NotNil(t, response.Error)
	assert.Equal(t, jsonrpc.MethodNotFound, response.Error.Code)
}

func TestHandler_Cancel(t *testing.T) {
	srv, toolset := newTestServer(t)
	ctx := context.Background()
	client := srv.AsClient(ctx, &recordingNotifier{})

	request, err := jsonrpc.NewRequest(schema.MethodToolsCall, &schema.CallToolRequestParams{Name: "wait"})
	require.NoError(t, err)
	request.Id = 7
	response := &jsonrpc.Response{}
	done := make(chan struct{})
	go func() {
		client.Handler().Serve(ctx, request, response)
		close(done)
	}()
	<-toolset.started
	client.Handler().OnNotification(ctx, &jsonrpc.Notification{Method: schema.MethodNotificationCancel, Params: []byte(`{"requestId":7,"reason":"user"}`)})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("request was not cancelled")
	}
	result := &schema.CallToolResult{}
	require.NoError(t, json.Unmarshal(response.Result, result))
	require.NotNil(t, result.IsError)
	assert.True(t, *result.IsError)
	assert.Equal(t, context.Canceled.Error(), contentText(t, result.Content[0]))
}
