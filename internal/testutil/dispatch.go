package testutil

import (
	"context"
	"encoding/json"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
)

// EchoDispatch is a dispatch double for transport tests. It mirrors the
// real dispatcher's contract: a parse error envelope for garbage, nil
// for notifications, and otherwise a response echoing the request
// method under the matching id.
func EchoDispatch(ctx context.Context, raw json.RawMessage) interface{} {
	var req shared.JSONRPCRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return shared.NewErrorResponse(nil, shared.ParseError, shared.ErrorMessage(shared.ParseError), nil)
	}
	if req.IsNotification() {
		return nil
	}
	return shared.NewResponse(req.ID, map[string]string{"method": req.Method})
}
