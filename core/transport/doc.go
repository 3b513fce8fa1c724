// Package transport connects pipeline routers to net/http and gorilla/websocket.
//
// Handler turns every HTTP request into one unit of work: it resolves the
// session from a cookie, seeds the request scope with the body, the query string
// and the remaining path, runs the HTTP router, and writes the stored Response.
// Errors are mapped with ErrorFrom and rendered as JSON.
//
// WebSocket upgrades a request from inside the HTTP pipeline. The new connection
// gets its own connection scope, a broadcast.Sink attached to it, and a place in
// the session's connection registry. A background receive loop then runs the
// websocket router once per data frame.
//
// # Usage
//
//	g := scope.NewGlobal()
//	ws := transport.NewWebSocket(pipeline.New(g, wsHandlers), cfg)
//	defer ws.Close()
//
//	router := pipeline.New(g, []pipeline.Handler[*scope.HTTPContext]{
//		transport.Routes(map[string]pipeline.Handler[*scope.HTTPContext]{
//			"":   transport.Methods(map[string]pipeline.Handler[*scope.HTTPContext]{http.MethodGet: index}),
//			"ws": ws.Upgrade(),
//		}),
//	})
//	http.ListenAndServe(":8080", transport.NewHandler(router, cfg))
//
// # Responses
//
// Handlers reply with Next (store and continue) or Stop (store and break). A
// successful run that never stored a response is answered with a 500
// "missing response".
//
// # Sessions
//
// The session id travels in an HttpOnly cookie. Ids are only accepted when the
// SessionIDs registry issued them; anything else gets a fresh id, so ids are
// never reused or chosen by the client.
//
// # Configuration
//
//	SESSION_COOKIE=wired_session
//	SESSION_MAX_AGE=720h
//	SESSION_SECURE_COOKIE=false
//	HTTP_MAX_BODY_SIZE=1048576
//	WS_READ_BUFFER_SIZE=1024
//	WS_WRITE_BUFFER_SIZE=1024
//	WS_READ_LIMIT=1048576
//	WS_WRITE_TIMEOUT=10s
//	WS_HANDSHAKE_TIMEOUT=10s
//	WS_ALLOW_ANY_ORIGIN=false
package transport
