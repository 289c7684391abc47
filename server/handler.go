package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/viant/houdinimcp/internal/collection"
	"github.com/viant/houdinimcp/internal/conv"
	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Handler represents a per transport MCP session handler
type Handler struct {
	transport.Notifier
	*Logger
	*Server
	activeContexts *collection.SyncMap[int, *activeContext]
	initialized    atomic.Bool
}

// Initialized returns true once the client confirmed initialization
func (h *Handler) Initialized() bool {
	return h.initialized.Load()
}

// Serve handles incoming JSON-RPC requests
func (h *Handler) Serve(parent context.Context, request *jsonrpc.Request, response *jsonrpc.Response) {
	if jsonrpc.Version != request.Jsonrpc {
		response.Error = jsonrpc.NewInvalidRequest("invalid JSON-RPC version", nil)
		return
	}
	id := conv.AsInt(request.Id)
	ctx, cancel := context.WithCancel(parent)
	activeContext, ctx := newActiveContext(ctx, cancel, request)
	ctx = withLogger(ctx, h.Logger)
	h.activeContexts.Put(id, activeContext)
	defer h.CancelOperation(id)

	switch request.Method {
	case schema.MethodInitialize:
		result, err := h.Initialize(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodPing:
		result, err := h.Ping(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsList:
		result, err := h.ListTools(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodToolsCall:
		result, err := h.CallTool(ctx, request)
		h.setResponse(response, result, err)
	case schema.MethodLoggingSetLevel:
		result, err := h.SetLevel(ctx, request)
		h.setResponse(response, result, err)
	default:
		response.Error = jsonrpc.NewMethodNotFound(fmt.Sprintf("method: %v not found", request.Method), request.Params)
	}
}

func (h *Handler) setResponse(response *jsonrpc.Response, result interface{}, rpcError *jsonrpc.Error) {
	if rpcError != nil {
		response.Error = rpcError
		return
	}
	var err error
	response.Result, err = json.Marshal(result)
	if err != nil {
		response.Error = jsonrpc.NewInternalError(err.Error(), []byte{})
	}
}

// CancelOperation cancels an in-flight request
func (h *Handler) CancelOperation(id int) {
	if active, ok := h.activeContexts.Get(id); ok {
		active.CancelFunc()
		h.activeContexts.Delete(id)
	}
}

// OnNotification handles incoming JSON-RPC notifications
func (h *Handler) OnNotification(ctx context.Context, notification *jsonrpc.Notification) {
	switch notification.Method {
	case schema.MethodNotificationCancel:
		_ = h.Cancel(ctx, notification)
	case schema.MethodNotificationInitialized:
		h.initialized.Store(true)
	}
}
