// Package middleware provides pipeline middlewares for cross-cutting concerns:
// panic recovery, request ids and structured logging.
//
// Every middleware is generic over the context type, so the same constructor
// serves HTTP and websocket routers:
//
//	httpRouter := pipeline.New(g, httpHandlers,
//		pipeline.WithMiddleware(
//			middleware.RequestID[*scope.HTTPContext](),
//			middleware.LoggingWithLogger[*scope.HTTPContext](log),
//			middleware.Recover[*scope.HTTPContext](),
//		),
//	)
//	wsRouter := pipeline.New(g, wsHandlers,
//		pipeline.WithMiddleware(
//			middleware.RequestID[*scope.WebSocketContext](),
//			middleware.LoggingWithLogger[*scope.WebSocketContext](log),
//			middleware.Recover[*scope.WebSocketContext](),
//		),
//	)
//
// Middlewares run in the order given; the first one is the outermost. Put
// Recover innermost so Logging reports the converted panic.
//
// # Request ID
//
// RequestID assigns an id to every unit of work. It is stored in the request
// scope (GetRequestID), passed down in the context.Context
// (RequestIDFromContext) and echoed in the X-Request-ID response header. Use
// RequestIDExtractor to attach it to every log record:
//
//	log := logger.New(logger.WithContextExtractors(middleware.RequestIDExtractor))
//
// # Logging
//
// Logging emits one record per unit of work with the method and path or the
// message type, the session and connection ids, the duration and the status.
// Failures mapping to 5xx are logged at error level; other failures and slow
// units of work at warning level.
package middleware
