package pipeline

import "context"

// Outcome tells the router what to do after a handler returns without error.
type Outcome int

const (
	// Continue runs the next handler. Continuing past the last handler ends the run successfully.
	Continue Outcome = iota
	// Break ends the run successfully without running the remaining handlers.
	Break
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Break:
		return "break"
	default:
		return "unknown"
	}
}

// Handler is one step of a pipeline. A non-nil error ends the run and its outcome is ignored.
type Handler[C any] func(ctx context.Context, c C) (Outcome, error)

// RunFunc executes a whole pipeline run over c.
type RunFunc[C any] func(ctx context.Context, c C) error

// Middleware wraps a whole pipeline run.
type Middleware[C any] func(next RunFunc[C]) RunFunc[C]

// ErrorMapper converts a handler error into the error the router reports.
type ErrorMapper func(err error) error

// Step adapts a function that never short-circuits on success into a Handler.
func Step[C any](fn func(ctx context.Context, c C) error) Handler[C] {
	return func(ctx context.Context, c C) (Outcome, error) {
		return Continue, fn(ctx, c)
	}
}

// Chain groups handlers into a single handler. A Break inside the chain is
// reported to the enclosing pipeline, which then stops as well.
func Chain[C any](handlers ...Handler[C]) Handler[C] {
	return func(ctx context.Context, c C) (Outcome, error) {
		return run(ctx, c, handlers)
	}
}

// run executes handlers in order and reports how the sequence ended.
func run[C any](ctx context.Context, c C, handlers []Handler[C]) (Outcome, error) {
	for _, h := range handlers {
		if h == nil {
			continue
		}
		outcome, err := h(ctx, c)
		if err != nil {
			return outcome, err
		}
		if outcome == Break {
			return Break, nil
		}
	}
	return Continue, nil
}

// chain builds a single run function from a middleware stack and endpoint.
func chain[C any](middlewares []Middleware[C], endpoint RunFunc[C]) RunFunc[C] {
	handler := endpoint
	// Wrap in reverse order so the first middleware runs first.
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return handler
}
