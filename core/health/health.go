package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/transport"
)

// Liveness reports that the process is running. It checks no dependencies.
func Liveness[C scope.RequestScoped](_ context.Context, c C) (pipeline.Outcome, error) {
	return transport.Stop(c, transport.Text(http.StatusOK, "ALIVE"))
}

// NoContent answers 204 without a body.
func NoContent[C scope.RequestScoped](_ context.Context, c C) (pipeline.Outcome, error) {
	return transport.Stop(c, transport.NoContent(http.StatusNoContent))
}

// Readiness runs every check in order and answers "READY", or 503 when one
// of them fails.
func Readiness[C scope.RequestScoped](log *slog.Logger, checks ...func(context.Context) error) pipeline.Handler[C] {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx context.Context, c C) (pipeline.Outcome, error) {
		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				return pipeline.Break, transport.ErrServiceUnavailable
			}
		}
		return transport.Stop(c, transport.Text(http.StatusOK, "READY"))
	}
}
