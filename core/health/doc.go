// Package health provides pipeline handlers for liveness and readiness checks.
//
//	httpRouter := pipeline.New(g, []pipeline.Handler[*scope.HTTPContext]{
//		transport.Routes(map[string]pipeline.Handler[*scope.HTTPContext]{
//			"live":  health.Liveness[*scope.HTTPContext],
//			"ready": health.Readiness[*scope.HTTPContext](log, pg.Healthcheck(pool), redis.Healthcheck(client)),
//			"ping":  health.NoContent[*scope.HTTPContext],
//		}),
//	})
//
// Dependency checks follow the func(context.Context) error signature of the
// database integrations' Healthcheck functions.
package health
