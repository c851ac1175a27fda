package logging

import (
	"context"
	"net/http"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const loggerKey contextKey = "logger"

// Middleware creates an HTTP middleware that attaches a request-scoped logger
// to the context and logs each request once it completes.
func Middleware(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestLogger := logger.With(Fields{
				"method": r.Method,
				"path":   r.URL.Path,
				"remote": r.RemoteAddr,
			})

			ctx := context.WithValue(r.Context(), loggerKey, requestLogger)
			next.ServeHTTP(w, r.WithContext(ctx))

			requestLogger.Debug("http request handled")
		})
	}
}

// FromContext retrieves the request-scoped logger from the context, falling
// back to the default logger.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(loggerKey).(*Logger)
	if !ok || logger == nil {
		return Default()
	}
	return logger
}
