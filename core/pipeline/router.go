package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/scope"
)

// Builder produces the context for one unit of work. The scope builders satisfy it.
type Builder[C any] interface {
	Build(g *scope.Global) (C, error)
}

// Router runs an ordered list of handlers over a context.
type Router[C any] struct {
	global      *scope.Global
	handlers    []Handler[C]
	middlewares []Middleware[C]
	mapErr      ErrorMapper
	logger      *slog.Logger
}

// New creates a router over the given global scope.
func New[C any](global *scope.Global, handlers []Handler[C], opts ...Option[C]) *Router[C] {
	if global == nil {
		global = scope.NewGlobal()
	}
	r := &Router[C]{
		global:   global,
		handlers: handlers,
		mapErr:   func(err error) error { return err },
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Global returns the router's global scope.
func (r *Router[C]) Global() *scope.Global {
	return r.global
}

// Run executes entry followed by the router's handlers over c. entry may be nil.
// The entry runs before the middlewares, which therefore see a seeded request
// scope. Entry errors are mapped like handler errors.
func (r *Router[C]) Run(ctx context.Context, c C, entry Handler[C]) error {
	if entry != nil {
		outcome, err := entry(ctx, c)
		if err != nil {
			return r.mapErr(err)
		}
		if outcome == Break {
			r.logger.DebugContext(ctx, "pipeline stopped by entry", logger.Outcome(outcome))
			return nil
		}
	}
	return chain(r.middlewares, r.runHandlers)(ctx, c)
}

// Handle builds a fresh context from b and runs it. The final context is returned
// alongside the run's error so the caller can produce a reply from it.
func (r *Router[C]) Handle(ctx context.Context, b Builder[C], entry Handler[C]) (C, error) {
	c, err := b.Build(r.global)
	if err != nil {
		var zero C
		return zero, fmt.Errorf("pipeline: build context: %w", err)
	}
	return c, r.Run(ctx, c, entry)
}

func (r *Router[C]) runHandlers(ctx context.Context, c C) error {
	outcome, err := run(ctx, c, r.handlers)
	if err != nil {
		return r.mapErr(err)
	}
	if outcome == Break {
		r.logger.DebugContext(ctx, "pipeline stopped early", logger.Outcome(outcome))
	}
	return nil
}

// HandleSession runs an HTTP unit of work for session. entry seeds the fresh request scope.
func HandleSession(ctx context.Context, r *Router[*scope.HTTPContext], session *scope.Session, entry Handler[*scope.HTTPContext]) (*scope.HTTPContext, error) {
	b := scope.NewHTTPBuilder().
		WithSession(session).
		WithRequest(scope.NewRequest())
	return r.Handle(ctx, b, entry)
}

// HandleConnection runs one message received on conn. entry seeds the fresh request scope.
func HandleConnection(ctx context.Context, r *Router[*scope.WebSocketContext], session *scope.Session, conn *scope.Connection, entry Handler[*scope.WebSocketContext]) (*scope.WebSocketContext, error) {
	b := scope.NewWebSocketBuilder().
		WithSession(session).
		WithConnection(conn).
		WithRequest(scope.NewRequest())
	return r.Handle(ctx, b, entry)
}
