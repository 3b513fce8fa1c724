package pg

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

// database is the global-scope slot holding the shared pool.
type database struct {
	pool *pgxpool.Pool
}

// Attach stores pool in the global scope so handlers can reach it through
// Pool. A later call replaces the previous pool; closing it stays with the
// caller.
func Attach(g *scope.Global, pool *pgxpool.Pool) {
	store.Insert(g, database{pool: pool})
}

// Pool returns the pool attached to the global scope of c.
func Pool(c scope.GlobalScoped) (*pgxpool.Pool, error) {
	h, ok := store.Get[database](c.GlobalScope())
	if !ok {
		return nil, ErrNoPool
	}
	defer h.Release()
	if h.Value().pool == nil {
		return nil, ErrNoPool
	}
	return h.Value().pool, nil
}
