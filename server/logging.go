package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

type setLevelParams struct {
	Level schema.LoggingLevel `json:"level"`
}

// SetLevel handles the logging/setLevel method
func (h *Handler) SetLevel(ctx context.Context, request *jsonrpc.Request) (map[string]interface{}, *jsonrpc.Error) {
	params := setLevelParams{}
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
	}
	if !ValidLevel(params.Level) {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("unsupported level: %v", params.Level), request.Params)
	}
	h.Logger.SetLevel(params.Level)
	return map[string]interface{}{}, nil
}
