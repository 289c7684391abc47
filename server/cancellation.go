package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/houdinimcp/internal/conv"
	"github.com/viant/jsonrpc"
)

type cancelledParams struct {
	RequestId interface{} `json:"requestId"`
	Reason    string      `json:"reason,omitempty"`
}

// Cancel cancels the context of the request named by a notifications/cancelled message
func (h *Handler) Cancel(ctx context.Context, notification *jsonrpc.Notification) *jsonrpc.Error {
	var params cancelledParams
	if err := json.Unmarshal(notification.Params, &params); err != nil {
		return jsonrpc.NewParsingError(fmt.Sprintf("failed to parse notification: %v", err), notification.Params)
	}
	id, ok := conv.ToInt(params.RequestId)
	if !ok {
		return jsonrpc.NewInvalidParamsError("invalid requestId", notification.Params)
	}
	h.CancelOperation(id)
	return nil
}
