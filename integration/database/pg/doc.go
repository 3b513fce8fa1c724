// Package pg connects the application to PostgreSQL through a pgx pool,
// applies goose migrations and exposes the pool to pipeline handlers through
// the global scope.
//
// # Connecting
//
// Configuration comes from the environment:
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil && !errors.Is(err, pg.ErrMigrationsDirNotFound) {
//		return err
//	}
//
// Connect pings the pool before returning it and retries failed attempts with
// exponential backoff starting at RetryInterval. Environment variables:
//
//	PG_CONN_URL            connection string (required)
//	PG_MAX_OPEN_CONNS      pool size (default 10)
//	PG_MAX_IDLE_CONNS      connections kept warm (default 5)
//	PG_HEALTHCHECK_PERIOD  pool health check period (default 1m)
//	PG_MAX_CONN_IDLE_TIME  idle connection lifetime (default 10m)
//	PG_MAX_CONN_LIFETIME   connection lifetime (default 30m)
//	PG_RETRY_ATTEMPTS      connect attempts (default 3)
//	PG_RETRY_INTERVAL      first backoff interval (default 5s)
//	PG_MIGRATIONS_PATH     goose migrations directory (default migrations)
//	PG_MIGRATIONS_TABLE    goose version table (default schema_migrations)
//
// # Global scope
//
// Attach stores the pool in the global scope; handlers fetch it with Pool:
//
//	pg.Attach(g, pool)
//
//	func listItems(ctx context.Context, c *scope.HTTPContext) (pipeline.Outcome, error) {
//		pool, err := pg.Pool(c)
//		if err != nil {
//			return pipeline.Break, err
//		}
//		rows, err := pool.Query(ctx, "SELECT id, name FROM items")
//		...
//	}
//
// # Transactions
//
// InTx begins a transaction and carries it in the context. Repositories call
// QuerierFrom to participate in a surrounding transaction when there is one:
//
//	err := pg.InTx(ctx, pool, func(ctx context.Context, tx pgx.Tx) error {
//		return repo.Save(ctx, item) // uses pg.QuerierFrom(ctx, pool)
//	})
//
// # Errors
//
// IsNotFoundError, IsDuplicateKeyError, IsForeignKeyViolationError and
// IsTxClosedError classify driver errors without importing pgconn.
package pg
