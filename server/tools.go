package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// ListTools handles the tools/list method
func (h *Handler) ListTools(ctx context.Context, request *jsonrpc.Request) (*schema.ListToolsResult, *jsonrpc.Error) {
	return &schema.ListToolsResult{Tools: h.toolset.Tools()}, nil
}

// CallTool handles the tools/call method, numbers in arguments are kept as json.Number
func (h *Handler) CallTool(ctx context.Context, request *jsonrpc.Request) (*schema.CallToolResult, *jsonrpc.Error) {
	params := schema.CallToolRequestParams{}
	decoder := json.NewDecoder(bytes.NewReader(request.Params))
	decoder.UseNumber()
	if err := decoder.Decode(&params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
	}
	if params.Name == "" {
		return nil, jsonrpc.NewInvalidParamsError("tool name was empty", request.Params)
	}
	arguments := params.Arguments
	if arguments == nil {
		arguments = map[string]interface{}{}
	}
	return h.toolset.Call(ctx, params.Name, arguments)
}
