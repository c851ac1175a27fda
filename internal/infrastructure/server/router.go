package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jmoliugp/mcp-jira-board-sub000/internal/infrastructure/logging"
)

// Router exposes both HTTP session managers on one listener. Dispatch is
// stateless prefix matching; every response carries permissive CORS
// headers, and OPTIONS short-circuits before reaching either manager.
type Router struct {
	logger     *logging.Logger
	streamable *StreamableServer
	sse        *SSEServer
	basePath   string
	srv        *http.Server
}

// RouterOption defines a function type for configuring Router
type RouterOption func(*Router)

// WithRouterBasePath sets the path prefix both endpoints are served under.
func WithRouterBasePath(basePath string) RouterOption {
	return func(rt *Router) {
		if basePath != "" && !strings.HasPrefix(basePath, "/") {
			basePath = "/" + basePath
		}
		rt.basePath = strings.TrimSuffix(basePath, "/")
	}
}

// NewRouter combines the streaming and SSE managers behind one handler.
func NewRouter(streamable *StreamableServer, sse *SSEServer, logger *logging.Logger, opts ...RouterOption) *Router {
	if logger == nil {
		logger = logging.Default()
	}
	rt := &Router{
		logger:     logger,
		streamable: streamable,
		sse:        sse,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Handler wraps the router in the request-scoped logger and the
// request-logging middleware.
func (rt *Router) Handler() http.Handler {
	return logging.Middleware(rt.logger)(rt.withRequestLogging(rt))
}

// Start begins serving both transports on the specified address.
func (rt *Router) Start(addr string) error {
	rt.srv = &http.Server{
		Addr:    addr,
		Handler: rt.Handler(),
	}
	rt.logger.Info("http transports listening", logging.Fields{
		"addr":    addr,
		"mcpPath": rt.basePath + "/mcp",
		"ssePath": rt.basePath + "/sse",
	})
	return rt.srv.ListenAndServe()
}

// Shutdown closes every live session on both managers and stops the
// listener.
func (rt *Router) Shutdown(ctx context.Context) error {
	if err := rt.streamable.Shutdown(ctx); err != nil {
		return err
	}
	if err := rt.sse.Shutdown(ctx); err != nil {
		return err
	}
	if rt.srv != nil {
		return rt.srv.Shutdown(ctx)
	}
	return nil
}

// ServeHTTP implements the http.Handler interface.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	applyCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, rt.basePath+"/mcp"):
		rt.streamable.ServeHTTP(w, r)
	case strings.HasPrefix(path, rt.basePath+"/sse"):
		rt.sse.ServeHTTP(w, r)
	default:
		http.NotFound(w, r)
	}
}

// applyCORS sets the permissive CORS headers every response carries.
// The session header must be both allowed and exposed so browser clients
// can run the streaming handshake.
func applyCORS(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+SessionHeader)
	h.Set("Access-Control-Expose-Headers", SessionHeader)
}

// withRequestLogging logs one structured entry per request.
func (rt *Router) withRequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		rt.logger.Info("http request", logging.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   recorder.status,
			"duration": time.Since(start).String(),
		})
	})
}

// statusRecorder captures the response status for the request log. It
// keeps the Flusher passthrough the SSE stream depends on.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
