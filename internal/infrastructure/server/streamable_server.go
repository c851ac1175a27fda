package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/domain/shared"
	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/logging"
)

// SessionHeader carries the streaming-session id on every request after
// initialize, and on every response.
const SessionHeader = "x-session-id"

// streamSession is one header-keyed streaming session. It is
// INITIALIZING between construction and the initialized signal, OPEN
// while stored, and CLOSED once the close notification has fired.
type streamSession struct {
	id          string
	dispatch    DispatchFunc
	initialized chan string
	onClose     func(sessionID string)
	closeOnce   sync.Once
}

func newStreamSession(dispatch DispatchFunc, onClose func(sessionID string)) *streamSession {
	return &streamSession{
		dispatch:    dispatch,
		initialized: make(chan string, 1),
		onClose:     onClose,
	}
}

// ID returns the minted session id; empty until initialization resolves.
func (s *streamSession) ID() string {
	return s.id
}

// HandleRequest dispatches one JSON-RPC message for this session.
func (s *streamSession) HandleRequest(ctx context.Context, rawMessage json.RawMessage) interface{} {
	return s.dispatch(ctx, rawMessage)
}

// HandleInitialize dispatches the initialize request, mints the session
// id and resolves the initialized signal. The signal fires exactly once;
// the manager must not register the session before it resolves.
func (s *streamSession) HandleInitialize(ctx context.Context, rawMessage json.RawMessage) interface{} {
	response := s.dispatch(ctx, rawMessage)
	s.id = newStreamSessionID()
	s.initialized <- s.id
	return response
}

// Initialized resolves with the session id once the initialize request
// has been handled.
func (s *streamSession) Initialized() <-chan string {
	return s.initialized
}

// Close fires the close notification exactly once. The manager removes
// the store entry keyed by the id the notification reports.
func (s *streamSession) Close() {
	s.closeOnce.Do(func() {
		if s.onClose != nil {
			s.onClose(s.id)
		}
	})
}

// newStreamSessionID mints a 32-hex-char crypto-random session id.
// Session ids must be unguessable; running without entropy is not safe.
func newStreamSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic(fmt.Sprintf("cannot generate session id: %v", err))
	}
	return hex.EncodeToString(buf)
}

// StreamableServer is the header-keyed streaming session manager. The
// first POST must be an initialize request; the response carries the
// minted session id in the SessionHeader, and every later request
// presents that header. DELETE closes the session.
type StreamableServer struct {
	logger      *logging.Logger
	dispatch    DispatchFunc
	store       *SessionStore
	basePath    string
	mcpEndpoint string
	srv         *http.Server
}

// StreamableOption defines a function type for configuring StreamableServer
type StreamableOption func(*StreamableServer)

// WithStreamableBasePath sets the path prefix the endpoint is served under.
func WithStreamableBasePath(basePath string) StreamableOption {
	return func(s *StreamableServer) {
		if basePath != "" && !strings.HasPrefix(basePath, "/") {
			basePath = "/" + basePath
		}
		s.basePath = strings.TrimSuffix(basePath, "/")
	}
}

// WithStreamableHTTPServer sets the HTTP server instance
func WithStreamableHTTPServer(srv *http.Server) StreamableOption {
	return func(s *StreamableServer) {
		s.srv = srv
	}
}

// NewStreamableServer creates a streaming session manager bound to the
// shared dispatch function and an injected session store.
func NewStreamableServer(dispatch DispatchFunc, store *SessionStore, logger *logging.Logger, opts ...StreamableOption) *StreamableServer {
	if logger == nil {
		logger = logging.Default()
	}
	s := &StreamableServer{
		logger:      logger,
		dispatch:    dispatch,
		store:       store,
		mcpEndpoint: "/mcp",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store exposes the injected session store.
func (s *StreamableServer) Store() *SessionStore {
	return s.store
}

// Start begins serving on the specified address.
func (s *StreamableServer) Start(addr string) error {
	s.srv = &http.Server{
		Addr:    addr,
		Handler: s,
	}
	return s.srv.ListenAndServe()
}

// Shutdown closes all sessions and stops the HTTP server.
func (s *StreamableServer) Shutdown(ctx context.Context) error {
	s.store.CloseAll()
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}

// mcpPath is the full path of the streaming endpoint.
func (s *StreamableServer) mcpPath() string {
	return s.basePath + s.mcpEndpoint
}

// handlePost routes one JSON-RPC message: header-less requests go through
// initialization, everything else to the session named by the header.
func (s *StreamableServer) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSONRPCError(w, http.StatusBadRequest, shared.ParseError, shared.ErrorMessage(shared.ParseError))
		return
	}

	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		s.handleInitialize(w, r, body)
		return
	}

	session, ok := s.store.Get(sessionID)
	if !ok {
		writeJSONRPCError(w, http.StatusNotFound, shared.NotFound, fmt.Sprintf("%s: %s", ErrSessionNotFound, sessionID))
		return
	}

	response := session.HandleRequest(r.Context(), json.RawMessage(body))
	w.Header().Set(SessionHeader, sessionID)
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeJSONBody(w, http.StatusOK, response)
}

// handleInitialize serves the one header-less request a client may send.
// Registration is two-phase: the session is stored only after its
// initialized signal resolves with the minted id, and the response is
// written only after registration.
func (s *StreamableServer) handleInitialize(w http.ResponseWriter, r *http.Request, body []byte) {
	var probe struct {
		Method string `json:"method"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		writeJSONRPCError(w, http.StatusBadRequest, shared.ParseError, shared.ErrorMessage(shared.ParseError))
		return
	}
	if probe.Method != shared.MethodInitialize {
		writeJSONRPCError(w, http.StatusBadRequest, shared.InvalidRequest,
			fmt.Sprintf("a %s header is required for every request except initialize", SessionHeader))
		return
	}

	session := newStreamSession(s.dispatch, s.store.Remove)
	response := session.HandleInitialize(r.Context(), json.RawMessage(body))

	id := <-session.Initialized()
	s.store.Put(session)
	s.logger.Info("streamable session opened", logging.Fields{"sessionId": id})

	w.Header().Set(SessionHeader, id)
	if response == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	writeJSONBody(w, http.StatusOK, response)
}

// handleDelete serves the client-triggered close.
func (s *StreamableServer) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		writeJSONRPCError(w, http.StatusBadRequest, shared.InvalidRequest,
			fmt.Sprintf("a %s header is required to close a session", SessionHeader))
		return
	}

	session, ok := s.store.Get(sessionID)
	if !ok {
		writeJSONRPCError(w, http.StatusNotFound, shared.NotFound, fmt.Sprintf("%s: %s", ErrSessionNotFound, sessionID))
		return
	}

	session.Close()
	s.logger.Info("streamable session closed", logging.Fields{"sessionId": sessionID})
	w.WriteHeader(http.StatusOK)
}

// ServeHTTP implements the http.Handler interface.
func (s *StreamableServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != s.mcpPath() {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPost:
		s.handlePost(w, r)
	case http.MethodDelete:
		s.handleDelete(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// writeJSONBody writes payload as a JSON response body.
func writeJSONBody(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
