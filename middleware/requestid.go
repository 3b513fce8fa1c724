package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
	"github.com/dmitrymomot/wired/core/transport"
)

// requestIDContextKey is used as a key for storing request ID in context.Context.
type requestIDContextKey struct{}

// requestID is the request id as stored in the request scope.
type requestID string

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	// Skip defines a function to skip middleware execution for specific units of work
	Skip func(c scope.RequestScoped) bool
	// Generator creates new request IDs (default: UUID v4)
	Generator func() string
	// HeaderName specifies the header name for the request ID (default: "X-Request-ID")
	HeaderName string
	// UseExisting reuses the id of an incoming HTTP request header
	UseExisting bool
}

// RequestID creates a request ID middleware with default configuration.
// Every unit of work gets a fresh UUID, available through GetRequestID and
// RequestIDFromContext and echoed in the HTTP response header.
func RequestID[C scope.RequestScoped]() pipeline.Middleware[C] {
	return RequestIDWithConfig[C](RequestIDConfig{})
}

// RequestIDWithConfig creates a request ID middleware with custom configuration.
func RequestIDWithConfig[C scope.RequestScoped](cfg RequestIDConfig) pipeline.Middleware[C] {
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-Request-ID"
	}

	if cfg.Generator == nil {
		cfg.Generator = func() string {
			return uuid.New().String()
		}
	}

	return func(next pipeline.RunFunc[C]) pipeline.RunFunc[C] {
		return func(ctx context.Context, c C) error {
			if cfg.Skip != nil && cfg.Skip(c) {
				return next(ctx, c)
			}

			var id string
			if cfg.UseExisting {
				if r, ok := transport.HTTPRequest(c); ok {
					id = r.Header.Get(cfg.HeaderName)
				}
			}
			if id == "" {
				id = cfg.Generator()
			}

			store.Insert(c.RequestScope(), requestID(id))
			err := next(context.WithValue(ctx, requestIDContextKey{}, id), c)

			if h, ok := store.GetMut[transport.Response](c.RequestScope()); ok {
				resp := h.Ptr()
				if resp.Header == nil {
					resp.Header = http.Header{}
				}
				resp.Header.Set(cfg.HeaderName, id)
				h.Release()
			}
			return err
		}
	}
}

// GetRequestID retrieves the request ID of a unit of work.
func GetRequestID(c scope.RequestScoped) (string, bool) {
	id, ok := store.GetCloned[requestID](c.RequestScope())
	return string(id), ok
}

// RequestIDFromContext retrieves the request ID from a context passed down by
// the middleware. Use it with logger.WithContextExtractors.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDContextKey{}).(string)
	return id, ok
}

// RequestIDExtractor is a logger.ContextExtractor adding the request id to
// records logged with the context of a unit of work.
func RequestIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := RequestIDFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.RequestID(id), true
}
