package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/logging"
)

// sseEventQueueSize bounds the per-session buffer between the message
// handler and the stream writer.
const sseEventQueueSize = 100

// sseSession is one live event-stream connection. It moves OPEN when the
// GET handler stores it and CLOSED when the deferred removal runs; the
// message handler only ever sees OPEN sessions.
type sseSession struct {
	id         string
	dispatch   DispatchFunc
	eventQueue chan string
	done       chan struct{}
	closeOnce  sync.Once
}

func newSSESession(id string, dispatch DispatchFunc) *sseSession {
	return &sseSession{
		id:         id,
		dispatch:   dispatch,
		eventQueue: make(chan string, sseEventQueueSize),
		done:       make(chan struct{}),
	}
}

// ID returns the session ID.
func (s *sseSession) ID() string {
	return s.id
}

// HandleRequest dispatches one JSON-RPC message for this session.
func (s *sseSession) HandleRequest(ctx context.Context, rawMessage json.RawMessage) interface{} {
	return s.dispatch(ctx, rawMessage)
}

// Close wakes the stream writer. Safe to call more than once.
func (s *sseSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// queueEvent enqueues one message event for the stream writer.
func (s *sseSession) queueEvent(data []byte) error {
	frame := fmt.Sprintf("event: message\ndata: %s\n\n", data)
	select {
	case s.eventQueue <- frame:
		return nil
	case <-s.done:
		return ErrSessionClosed
	default:
		return ErrEventQueueFull
	}
}

// SSEServer is the event-stream session manager. A GET on the SSE
// endpoint opens the stream, announces the per-session message endpoint
// through the `endpoint` bootstrap event, and pumps queued events until
// the connection ends. POSTs on the same path carry JSON-RPC messages
// routed by the sessionId query parameter.
type SSEServer struct {
	logger      *logging.Logger
	dispatch    DispatchFunc
	store       *SessionStore
	basePath    string
	sseEndpoint string
	srv         *http.Server
}

// SSEOption defines a function type for configuring SSEServer
type SSEOption func(*SSEServer)

// WithSSEBasePath sets the path prefix the SSE endpoint is served under.
func WithSSEBasePath(basePath string) SSEOption {
	return func(s *SSEServer) {
		if basePath != "" && !strings.HasPrefix(basePath, "/") {
			basePath = "/" + basePath
		}
		s.basePath = strings.TrimSuffix(basePath, "/")
	}
}

// WithSSEHTTPServer sets the HTTP server instance
func WithSSEHTTPServer(srv *http.Server) SSEOption {
	return func(s *SSEServer) {
		s.srv = srv
	}
}

// NewSSEServer creates an SSE session manager bound to the shared
// dispatch function and an injected session store.
func NewSSEServer(dispatch DispatchFunc, store *SessionStore, logger *logging.Logger, opts ...SSEOption) *SSEServer {
	if logger == nil {
		logger = logging.Default()
	}
	s := &SSEServer{
		logger:      logger,
		dispatch:    dispatch,
		store:       store,
		sseEndpoint: "/sse",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the injected session store.
func (s *SSEServer) Store() *SessionStore {
	return s.store
}

// Start begins serving SSE connections on the specified address.
func (s *SSEServer) Start(addr string) error {
	s.srv = &http.Server{
		Addr:    addr,
		Handler: s,
	}
	return s.srv.ListenAndServe()
}

// Shutdown gracefully stops the SSE server, closing all active sessions
// and shutting down the HTTP server.
func (s *SSEServer) Shutdown(ctx context.Context) error {
	s.store.CloseAll()
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

// ssePath is the full path of the SSE endpoint.
func (s *SSEServer) ssePath() string {
	return s.basePath + s.sseEndpoint
}

// handleStream handles an incoming SSE connection request. It constructs
// the session, stores it, announces the message endpoint and pumps the
// event queue; the deferred removal runs when the connection ends.
func (s *SSEServer) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, ErrStreamingUnsupported.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	session := newSSESession(uuid.New().String(), s.dispatch)
	s.store.Put(session)
	defer func() {
		s.store.Remove(session.ID())
		session.Close()
		s.logger.Info("sse session closed", logging.Fields{"sessionId": session.ID()})
	}()

	s.logger.Info("sse session opened", logging.Fields{"sessionId": session.ID()})

	// The bootstrap event tells the client where to POST its messages.
	fmt.Fprintf(w, "event: endpoint\ndata: %s?sessionId=%s\n\n", s.ssePath(), session.ID())
	flusher.Flush()

	for {
		select {
		case frame := <-session.eventQueue:
			fmt.Fprint(w, frame)
			flusher.Flush()
		case <-session.done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

// handleMessage processes one incoming JSON-RPC message. The response is
// queued on the session's stream and echoed in the HTTP response.
func (s *SSEServer) handleMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		writeJSONRPCError(w, http.StatusBadRequest, shared.InvalidParams, "Missing sessionId query parameter")
		return
	}

	entry, ok := s.store.Get(sessionID)
	if !ok {
		writeJSONRPCError(w, http.StatusNotFound, shared.NotFound, fmt.Sprintf("%s: %s", ErrSessionNotFound, sessionID))
		return
	}
	session := entry.(*sseSession)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONRPCError(w, http.StatusBadRequest, shared.ParseError, shared.ErrorMessage(shared.ParseError))
		return
	}

	response := session.HandleRequest(r.Context(), json.RawMessage(body))
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	data, err := json.Marshal(response)
	if err != nil {
		writeJSONRPCError(w, http.StatusInternalServerError, shared.InternalError, shared.ErrorMessage(shared.InternalError))
		return
	}
	if err := session.queueEvent(data); err != nil {
		s.logger.Warn("sse event dropped", logging.Fields{
			"sessionId": sessionID,
			"reason":    err.Error(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write(data)
}

// ServeHTTP implements the http.Handler interface.
func (s *SSEServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != s.ssePath() {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.handleStream(w, r)
	case http.MethodPost:
		s.handleMessage(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
