// Package scope defines the four lifetimes values can live in and the contexts
// handlers receive.
//
//   - Global: one per process, shared by every unit of work.
//   - Session: shared by every request and connection carrying the same session id.
//     Sessions are registered inside the Global scope.
//   - Connection: one per live websocket connection, registered in its session's
//     ConnectionRegistry while the receive loop runs.
//   - Request: one per HTTP request or websocket message, exclusively owned.
//
// Global, Session and Connection embed a *store.Shared and Request embeds a
// *store.Local, so the generic store functions work on them directly:
//
//	store.Insert(c.SessionScope(), Cart{})
//	h := store.GetMutOrInsert[Cart](c.SessionScope())
//	h.Ptr().Items++
//	h.Release()
//
// # Contexts
//
// A context bundles one Global scope with a fixed set of others. Contexts are built
// once per unit of work by a builder and never change shape afterwards:
//
//	ctx, err := scope.NewHTTPBuilder().
//		WithSession(session).
//		WithRequest(scope.NewRequest()).
//		Build(global)
//	if errors.Is(err, scope.ErrMissingField) {
//		// a required scope was never supplied
//	}
//
// Builders can carry scopes forward from a smaller context shape, for example
// FromSessionless once the session has been resolved.
package scope
