package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/wired/core/config"
	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/server"
	"github.com/dmitrymomot/wired/integration/database/pg"
	"github.com/dmitrymomot/wired/integration/database/redis"
	"github.com/dmitrymomot/wired/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg)

	envOpt := logger.WithDevelopment(cfg.AppName)
	if cfg.AppEnv == "production" {
		envOpt = logger.WithProduction(cfg.AppName)
	}
	log := logger.New(envOpt, logger.WithContextExtractors(middleware.RequestIDExtractor))
	logger.SetAsDefault(log)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("application stopped with error", logger.Error(err))
		os.Exit(1)
	}
	log.Info("application stopped")
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	d := deps{registry: prometheus.DefaultRegisterer, gatherer: prometheus.DefaultGatherer}

	if os.Getenv("PG_CONN_URL") != "" {
		var dbCfg pg.Config
		if err := config.Load(&dbCfg); err != nil {
			return err
		}
		pool, err := pg.Connect(ctx, dbCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		err = pg.Migrate(ctx, pool, dbCfg, log.With(logger.Component("migrations")))
		if err != nil && !errors.Is(err, pg.ErrMigrationsDirNotFound) {
			return err
		}
		d.pool = pool
		d.checks = append(d.checks, pg.Healthcheck(pool))
	}

	if os.Getenv("REDIS_URL") != "" {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		d.redis = client
		d.sessionIDs = redis.NewSessionIDsFromConfig(client, redisCfg)
		d.checks = append(d.checks, redis.Healthcheck(client))
	}

	a, err := newApp(cfg, log, d)
	if err != nil {
		return err
	}

	srv, err := server.NewFromConfig(cfg.Server,
		server.WithLogger(log),
		server.WithShutdownHook(a.ws.Close),
	)
	if err != nil {
		return err
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Run(ctx, a.handler))
	return eg.Wait()
}
