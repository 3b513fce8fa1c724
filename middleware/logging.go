package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrymomot/wired/core/body"
	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/transport"
)

// LoggingConfig configures the logging middleware.
type LoggingConfig struct {
	// Skip defines a function to skip middleware execution for specific units of work
	Skip func(c scope.RequestScoped) bool

	// Logger is the slog logger to use (default: slog.Default())
	Logger *slog.Logger

	// LogLevel for successful units of work (default: slog.LevelInfo)
	LogLevel slog.Level

	// LogHeaders enables logging of HTTP request headers (default: false for security)
	LogHeaders bool

	// SensitiveHeaders is a list of header names to redact (default: common auth headers)
	SensitiveHeaders []string

	// SlowRequestThreshold logs slow units of work at warning level (default: 5s)
	SlowRequestThreshold time.Duration

	// Component name for structured logging
	Component string
}

// Logging creates a logging middleware with default configuration.
// It logs one record per unit of work, HTTP request or websocket message alike.
func Logging[C scope.RequestScoped]() pipeline.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{})
}

// LoggingWithLogger creates a logging middleware with a custom logger.
func LoggingWithLogger[C scope.RequestScoped](log *slog.Logger) pipeline.Middleware[C] {
	return LoggingWithConfig[C](LoggingConfig{
		Logger: log,
	})
}

// LoggingWithConfig creates a logging middleware with custom configuration.
//
// Failures mapping to a 5xx status are logged at error level, other failures
// and slow units of work at warning level, everything else at cfg.LogLevel.
func LoggingWithConfig[C scope.RequestScoped](cfg LoggingConfig) pipeline.Middleware[C] {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	if cfg.SensitiveHeaders == nil {
		cfg.SensitiveHeaders = []string{
			"Authorization",
			"Cookie",
			"Set-Cookie",
			"X-Api-Key",
			"X-Auth-Token",
			"X-Csrf-Token",
		}
	}

	if cfg.SlowRequestThreshold <= 0 {
		cfg.SlowRequestThreshold = 5 * time.Second
	}

	if cfg.Component == "" {
		cfg.Component = "pipeline"
	}

	return func(next pipeline.RunFunc[C]) pipeline.RunFunc[C] {
		return func(ctx context.Context, c C) error {
			if cfg.Skip != nil && cfg.Skip(c) {
				return next(ctx, c)
			}

			start := time.Now()
			err := next(ctx, c)
			duration := time.Since(start)

			attrs := []slog.Attr{
				logger.Component(cfg.Component),
				logger.Event("unit_of_work"),
			}
			attrs = append(attrs, describe(c, cfg)...)
			if id, ok := GetRequestID(c); ok {
				attrs = append(attrs, logger.RequestID(id))
			}
			attrs = append(attrs, logger.Duration(duration))

			status := 0
			if resp, ok := transport.ResponseOf(c); ok {
				status = resp.Status
			}
			if err != nil {
				status = transport.ErrorFrom(err).Status
				attrs = append(attrs, logger.Error(err))
			}
			if status != 0 {
				attrs = append(attrs, logger.StatusCode(status))
			}

			level := cfg.LogLevel
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest || err != nil:
				level = slog.LevelWarn
			case duration > cfg.SlowRequestThreshold:
				level = slog.LevelWarn
				attrs = append(attrs, slog.Bool("slow_request", true))
			}

			cfg.Logger.LogAttrs(ctx, level, "unit of work completed", attrs...)
			return err
		}
	}
}

// describe collects the identifying attributes of whatever kind of unit of work c is.
func describe(c scope.RequestScoped, cfg LoggingConfig) []slog.Attr {
	var attrs []slog.Attr

	if r, ok := transport.HTTPRequest(c); ok {
		attrs = append(attrs, logger.Method(r.Method), logger.Path(r.URL.Path))
		if cfg.LogHeaders {
			attrs = append(attrs, slog.Any("request_headers", redact(r.Header, cfg.SensitiveHeaders)))
		}
	}
	if m, ok := body.Message(c); ok {
		attrs = append(attrs, logger.Key("message_type", m.Type.String()))
	}
	if s, ok := c.(scope.SessionScoped); ok {
		attrs = append(attrs, logger.SessionID(s.SessionScope().ID()))
	}
	if cs, ok := c.(scope.ConnectionScoped); ok {
		attrs = append(attrs, logger.ConnectionID(cs.ConnectionScope().ID()))
	}
	return attrs
}

func redact(h http.Header, sensitive []string) map[string]any {
	headers := make(map[string]any, len(h))
	for key, values := range h {
		switch {
		case slices.Contains(sensitive, key):
			headers[key] = "[REDACTED]"
		case len(values) == 1:
			headers[key] = values[0]
		default:
			headers[key] = values
		}
	}
	return headers
}
