package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
)

// Common errors in the server package
var (
	// ErrStreamingUnsupported is returned when the ResponseWriter doesn't support the Flusher interface
	ErrStreamingUnsupported = errors.New("response writer does not implement http.Flusher")

	// ErrSessionNotFound is returned when a session cannot be found
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionClosed is returned when attempting to use a closed session
	ErrSessionClosed = errors.New("session is closed")

	// ErrEventQueueFull is returned when a session's event queue is full
	ErrEventQueueFull = errors.New("event queue is full")
)

// writeJSONRPCError writes a JSON-RPC error envelope with the given HTTP
// status. Transport-level failures carry a nil id: they happen before any
// request id is known.
func writeJSONRPCError(w http.ResponseWriter, httpStatus int, code shared.ErrorCode, message string) {
	response := shared.NewErrorResponse(nil, code, message, nil)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(response)
}
