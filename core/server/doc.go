// Package server runs an http.Handler with graceful shutdown and production
// timeouts. It wraps the standard http.Server.
//
// # Basic Usage
//
//	srv := server.New(":8080",
//		server.WithShutdownTimeout(60*time.Second),
//		server.WithLogger(log),
//	)
//	if err := srv.Start(ctx, handler); err != nil && !errors.Is(err, context.Canceled) {
//		log.Error("server failed", logger.Error(err))
//	}
//	_ = srv.Stop()
//
// # Configuration
//
// Config is loaded from the environment with core/config:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//
// Variables: SERVER_ADDR, SERVER_READ_TIMEOUT, SERVER_WRITE_TIMEOUT,
// SERVER_IDLE_TIMEOUT, SERVER_SHUTDOWN_TIMEOUT, SERVER_MAX_HEADER_BYTES,
// SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE.
//
// # Lifecycle
//
// Run returns a func() error for errgroup. It starts the server and stops it
// gracefully once the group context is cancelled:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, handler))
//	return g.Wait()
//
// Connections hijacked from the server, such as websockets, are not waited for
// by http.Server.Shutdown. Register their cleanup with WithShutdownHook:
//
//	srv := server.New(addr, server.WithShutdownHook(ws.Close))
//
// # Server Defaults
//
//   - ReadTimeout: 15 seconds
//   - WriteTimeout: 15 seconds
//   - IdleTimeout: 60 seconds
//   - MaxHeaderBytes: 1MB
//   - Graceful shutdown timeout: 30 seconds
//   - Logger: discard
package server
