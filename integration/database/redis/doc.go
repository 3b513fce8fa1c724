// Package redis connects to Redis with go-redis and provides a Redis-backed
// session id registry, so several instances of the server accept the same
// session cookies.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	redis.Attach(g, client)
//	handler := transport.NewHandler(router, transportCfg,
//		transport.WithSessionIDs(redis.NewSessionIDsFromConfig(client, cfg)))
//
// Connect accepts redis:// and rediss:// URLs, pings the server and retries
// with exponential backoff until ConnectTimeout elapses. Environment variables:
//
//	REDIS_URL              connection URL (required)
//	REDIS_RETRY_ATTEMPTS   ping attempts (default 3)
//	REDIS_RETRY_INTERVAL   first backoff interval (default 5s)
//	REDIS_CONNECT_TIMEOUT  bound on the whole connect (default 30s)
//	REDIS_SESSION_PREFIX   key prefix for issued session ids (default wired:session:)
//	REDIS_SESSION_TTL      lifetime of an issued id, refreshed on use (default 720h)
//
// SessionIDs claims new ids with SET NX, so an id is never issued twice, and
// extends the expiry of an id every time a request presents it.
package redis
