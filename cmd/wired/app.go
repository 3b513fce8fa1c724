package main

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/wired/core/broadcast"
	"github.com/dmitrymomot/wired/core/health"
	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/pipeline"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/transport"
	"github.com/dmitrymomot/wired/integration/database/pg"
	"github.com/dmitrymomot/wired/integration/database/redis"
	"github.com/dmitrymomot/wired/middleware"
)

type (
	httpHandler = pipeline.Handler[*scope.HTTPContext]
	wsHandler   = pipeline.Handler[*scope.WebSocketContext]
)

// deps are the optional collaborators main wires in.
type deps struct {
	pool       *pgxpool.Pool
	redis      goredis.UniversalClient
	sessionIDs transport.SessionIDs
	checks     []func(context.Context) error
	registry   prometheus.Registerer
	gatherer   prometheus.Gatherer
}

type app struct {
	global      *scope.Global
	broadcaster *broadcast.Broadcaster
	ws          *transport.WebSocket
	handler     http.Handler
}

func newApp(cfg Config, log *slog.Logger, d deps) (*app, error) {
	g := scope.NewGlobal()
	if d.pool != nil {
		pg.Attach(g, d.pool)
	}
	if d.redis != nil {
		redis.Attach(g, d.redis)
	}

	bopts := []broadcast.Option{
		broadcast.WithLogger(log),
		broadcast.WithLimiter(semaphore.NewWeighted(cfg.Broadcast.MaxParallelSends)),
	}
	if cfg.MetricsEnabled && d.registry != nil {
		bopts = append(bopts, broadcast.WithMetrics(broadcast.NewMetrics(broadcast.MetricsConfig{
			Namespace: metricsNamespace(cfg.AppName),
			Registry:  d.registry,
		})))
	}
	b, err := broadcast.New(cfg.Broadcast, bopts...)
	if err != nil {
		return nil, err
	}

	wsRouter := pipeline.New(g, []wsHandler{
		pipeline.Step(countMessage),
		command(b),
	},
		pipeline.WithLogger[*scope.WebSocketContext](log),
		pipeline.WithMiddleware(
			middleware.RequestID[*scope.WebSocketContext](),
			middleware.LoggingWithLogger[*scope.WebSocketContext](log),
			middleware.RecoverWithLogger[*scope.WebSocketContext](log),
		),
	)
	ws := transport.NewWebSocket(wsRouter, cfg.Transport,
		transport.WithWSLogger(log),
		transport.WithWSOnConnect(func(ctx context.Context, s *scope.Session, c *scope.Connection) {
			log.InfoContext(ctx, "websocket connected", logger.SessionID(s.ID()), logger.ConnectionID(c.ID()))
		}),
		transport.WithWSOnDisconnect(func(ctx context.Context, s *scope.Session, c *scope.Connection) {
			log.InfoContext(ctx, "websocket disconnected", logger.SessionID(s.ID()), logger.ConnectionID(c.ID()))
		}),
	)

	httpRouter := pipeline.New(g, []httpHandler{
		pipeline.Step(countHit),
		transport.Routes(map[string]httpHandler{
			"": transport.Methods(map[string]httpHandler{http.MethodGet: index}),
			"counter": transport.Methods(map[string]httpHandler{
				http.MethodGet: showHits,
			}),
			"session": transport.Methods(map[string]httpHandler{
				http.MethodGet:    showTotal,
				http.MethodPost:   accumulate,
				http.MethodDelete: resetTotal,
			}),
			"broadcast": transport.Methods(map[string]httpHandler{
				http.MethodPost: fanOut(b),
			}),
			"ws": ws.Upgrade(),
			"health": transport.Routes(map[string]httpHandler{
				"live":  health.Liveness[*scope.HTTPContext],
				"ready": health.Readiness[*scope.HTTPContext](log, d.checks...),
			}),
		}),
	},
		pipeline.WithLogger[*scope.HTTPContext](log),
		pipeline.WithMiddleware(
			middleware.RequestID[*scope.HTTPContext](),
			middleware.LoggingWithLogger[*scope.HTTPContext](log),
			middleware.RecoverWithLogger[*scope.HTTPContext](log),
		),
	)

	hopts := []transport.HandlerOption{
		transport.WithLogger(log),
		transport.WithSessionlessPaths("/health"),
	}
	if d.sessionIDs != nil {
		hopts = append(hopts, transport.WithSessionIDs(d.sessionIDs))
	}

	mux := http.NewServeMux()
	mux.Handle("/", transport.NewHandler(httpRouter, cfg.Transport, hopts...))
	if cfg.MetricsEnabled && d.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))
	}

	return &app{global: g, broadcaster: b, ws: ws, handler: mux}, nil
}

// metricsNamespace turns name into a valid Prometheus namespace.
func metricsNamespace(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
