// Package logger provides structured logging utilities built on Go's standard slog package.
//
// Every component in this module accepts a *slog.Logger and falls back to Nop when
// none is configured, so libraries stay silent unless the application opts in.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/wired/core/logger"
//
//	// Development: text format, debug level
//	log := logger.New(logger.WithDevelopment("wired"))
//
//	// Production: JSON format, info level
//	log := logger.New(
//		logger.WithProduction("wired"),
//		logger.WithOutput(os.Stderr),
//	)
//
//	log.Info("broadcast finished",
//		logger.Component("broadcast"),
//		logger.SessionID(sessionID),
//		logger.Count("sent", n),
//	)
//
// # Context-Aware Logging
//
// Extractors add attributes from the context passed to the *Context logging methods:
//
//	log := logger.New(
//		logger.WithJSONFormatter(),
//		logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//			id, ok := middleware.GetRequestID(ctx)
//			return logger.RequestID(id), ok
//		}),
//	)
//
//	log.InfoContext(ctx, "request handled")
//
// # Attribute Helpers
//
// Helpers return the empty slog.Attr for nil or empty input, which slog drops:
//
//	log.Error("send failed",
//		logger.Error(err),          // omitted when err == nil
//		logger.ConnectionID(id),    // accepts any fmt.Stringer
//		logger.Duration(elapsed),
//	)
//
// # Testing
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
//	log.Info("hello", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
package logger
