package redis

import (
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

type clientSlot struct {
	client redis.UniversalClient
}

// Attach stores client in the global scope for handlers to fetch with Client.
func Attach(g *scope.Global, client redis.UniversalClient) {
	store.Insert(g, clientSlot{client: client})
}

// Client returns the client attached to the global scope of c.
func Client(c scope.GlobalScoped) (redis.UniversalClient, error) {
	h, ok := store.Get[clientSlot](c.GlobalScope())
	if !ok {
		return nil, ErrNoClient
	}
	defer h.Release()
	if h.Value().client == nil {
		return nil, ErrNoClient
	}
	return h.Value().client, nil
}
