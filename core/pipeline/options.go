package pipeline

import "log/slog"

// Option configures a Router during creation.
type Option[C any] func(*Router[C])

// WithErrorMapper sets the function applied to every entry and handler error.
// The default returns errors unchanged.
func WithErrorMapper[C any](m ErrorMapper) Option[C] {
	return func(r *Router[C]) {
		if m != nil {
			r.mapErr = m
		}
	}
}

// WithMiddleware adds middleware wrapping every run.
func WithMiddleware[C any](middlewares ...Middleware[C]) Option[C] {
	return func(r *Router[C]) {
		r.middlewares = append(r.middlewares, middlewares...)
	}
}

// WithLogger sets a custom logger for the router.
func WithLogger[C any](logger *slog.Logger) Option[C] {
	return func(r *Router[C]) {
		if logger != nil {
			r.logger = logger
		}
	}
}
