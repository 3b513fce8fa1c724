// Package pipeline runs a unit of work through an ordered list of handlers.
//
// Every handler receives the same context and returns an Outcome or an error:
//
//   - Continue moves on to the next handler; continuing past the last one ends
//     the run successfully.
//   - Break ends the run successfully and skips the remaining handlers.
//   - A non-nil error ends the run; the remaining handlers never run and the
//     error is passed through the router's ErrorMapper.
//
// An optional entry handler runs first and seeds the request scope from the
// inbound unit of work (a decoded message, an HTTP request). Middlewares wrap
// the handler list only, so they always observe a seeded context.
//
// # Basic Usage
//
//	type Counter struct{ N int }
//
//	count := func(ctx context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
//		h := store.GetMutOrInsert[Counter](c.GlobalScope())
//		defer h.Release()
//		h.Ptr().N++
//		return pipeline.Continue, nil
//	}
//
//	r := pipeline.New(global, []pipeline.Handler[*scope.HTTPContext]{count},
//		pipeline.WithMiddleware(middleware.Recover[*scope.HTTPContext]()),
//	)
//
//	final, err := pipeline.HandleSession(ctx, r, session, entry)
//
// # Sub-pipelines
//
// Chain groups handlers into one; a Break inside the group stops the outer run too.
package pipeline
