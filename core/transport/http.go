package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/dmitrymomot/wired/core/body"
	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

// exchange is the raw request and writer of an HTTP unit of work.
type exchange struct {
	w http.ResponseWriter
	r *http.Request
}

// upgraded marks a request whose connection was taken over by the websocket
// upgrader; no HTTP response may be written for it.
type upgraded struct{}

// Handler adapts an HTTP router to net/http. Each request becomes one unit of
// work over the session named by its cookie.
type Handler struct {
	global *scope.Global
	router *pipeline.Router[*scope.HTTPContext]
	ids    SessionIDs
	cfg    Config
	logger *slog.Logger

	sessionlessPaths []string
	lastSweep        atomic.Int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithSessionIDs sets the registry of issued session ids.
// Defaults to an in-memory registry in the router's global scope.
func WithSessionIDs(ids SessionIDs) HandlerOption {
	return func(h *Handler) {
		if ids != nil {
			h.ids = ids
		}
	}
}

// WithSessionlessPaths lists path prefixes, such as health checks, that do not
// create sessions. Requests under them that carry no valid session cookie run
// over a detached session and receive no cookie.
func WithSessionlessPaths(prefixes ...string) HandlerOption {
	return func(h *Handler) {
		for _, p := range prefixes {
			if p = strings.TrimSuffix(p, "/"); p != "" {
				h.sessionlessPaths = append(h.sessionlessPaths, p)
			}
		}
	}
}

// WithLogger sets a custom logger for the handler.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if l != nil {
			h.logger = l
		}
	}
}

// NewHandler creates an http.Handler running router for every request. Zero
// fields of cfg take their DefaultConfig values.
func NewHandler(router *pipeline.Router[*scope.HTTPContext], cfg Config, opts ...HandlerOption) *Handler {
	h := &Handler{
		global: router.Global(),
		router: router,
		cfg:    cfg.withDefaults(),
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.ids == nil {
		h.ids = NewMemorySessionIDs(h.global)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.sweepSessions(ctx)

	session, err := h.resolveSession(w, r)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to resolve session", logger.Component("transport"), logger.Error(err))
		writeResponse(w, r, errorResponse(ErrInternalServerError))
		return
	}

	var data []byte
	if r.Body != nil {
		data, err = io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxBodySize))
		if err != nil {
			writeResponse(w, r, errorResponse(ErrorFrom(err)))
			return
		}
	}

	c, err := pipeline.HandleSession(ctx, h.router, session, func(_ context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
		req := c.RequestScope()
		body.SeedHTTP(req, data, r.Header.Get("Content-Type"), r.URL.RawQuery)
		store.Insert(req, exchange{w: w, r: r})
		store.Insert(req, NewRemainingPath(r.URL.Path))
		return pipeline.Continue, nil
	})
	if c != nil && store.Exists[upgraded](c.RequestScope()) {
		return
	}
	if err != nil {
		e := ErrorFrom(err)
		if e.Status >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "request failed",
				logger.Component("transport"),
				logger.SessionID(session.ID()),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.Error(err),
			)
		}
		writeResponse(w, r, errorResponse(e))
		return
	}

	resp, ok := ResponseOf(c)
	if !ok {
		resp = errorResponse(ErrMissingResponse)
	}
	writeResponse(w, r, resp)
}

// HTTPRequest returns the request an HTTP unit of work was built from.
func HTTPRequest(c scope.RequestScoped) (*http.Request, bool) {
	ex, ok := store.GetCloned[exchange](c.RequestScope())
	if !ok {
		return nil, false
	}
	return ex.r, true
}
