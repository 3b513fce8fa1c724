package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/transport"
	"github.com/dmitrymomot/wired/integration/database/redis"
)

var _ transport.SessionIDs = (*redis.SessionIDs)(nil)

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{name: "empty", url: "", want: redis.ErrEmptyConnectionURL},
		{name: "wrong scheme", url: "http://localhost:6379", want: redis.ErrFailedToParseRedisConnString},
		{name: "bad db", url: "redis://localhost:6379/notanumber", want: redis.ErrFailedToParseRedisConnString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: tt.url})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConnectUnreachable(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  3,
		RetryInterval:  time.Second,
		ConnectTimeout: 300 * time.Millisecond,
	})
	require.ErrorIs(t, err, redis.ErrRedisNotReady)
}

func TestClientAccessor(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	_, err := redis.Client(g)
	require.ErrorIs(t, err, redis.ErrNoClient)

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	redis.Attach(g, client)
	got, err := redis.Client(g)
	require.NoError(t, err)
	assert.Equal(t, client, got)
}

func TestSessionIDsIntegration(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := redis.Connect(ctx, redis.Config{ConnectionURL: url, RetryAttempts: 1})
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, redis.Healthcheck(client)(ctx))

	ids := redis.NewSessionIDs(client,
		redis.WithSessionPrefix("wired:test:"+scope.NewSessionID().String()+":"),
		redis.WithSessionTTL(time.Minute))

	id, err := ids.Issue(ctx)
	require.NoError(t, err)

	known, err := ids.Known(ctx, id)
	require.NoError(t, err)
	assert.True(t, known)

	known, err = ids.Known(ctx, scope.NewSessionID())
	require.NoError(t, err)
	assert.False(t, known, "ids never issued are unknown")

	require.NoError(t, ids.Revoke(ctx, id))
	known, err = ids.Known(ctx, id)
	require.NoError(t, err)
	assert.False(t, known)
}
