package scope

import (
	"bytes"
	"maps"
	"slices"

	"github.com/dmitrymomot/wired/core/store"
)

// ConnectionRegistry maps connection ids to the live connections of one session.
// It is stored as a regular value in the session scope.
type ConnectionRegistry struct {
	conns map[ConnectionID]*Connection
}

// Clone returns a registry with its own map. The connection scopes themselves are shared.
func (r ConnectionRegistry) Clone() ConnectionRegistry {
	return ConnectionRegistry{conns: maps.Clone(r.conns)}
}

// Len returns the number of registered connections.
func (r ConnectionRegistry) Len() int { return len(r.conns) }

// Get returns the connection registered under id.
func (r ConnectionRegistry) Get(id ConnectionID) (*Connection, bool) {
	c, ok := r.conns[id]
	return c, ok
}

// All returns the registered connections ordered by id.
func (r ConnectionRegistry) All() []*Connection {
	out := slices.Collect(maps.Values(r.conns))
	slices.SortFunc(out, func(a, b *Connection) int {
		return compareIDs(a.id, b.id)
	})
	return out
}

func (r *ConnectionRegistry) add(c *Connection) {
	if r.conns == nil {
		r.conns = make(map[ConnectionID]*Connection)
	}
	r.conns[c.id] = c
}

// RegisterConnection adds c to the session's connection registry.
func (s *Session) RegisterConnection(c *Connection) {
	h := store.GetMutOrInsert[ConnectionRegistry](s)
	defer h.Release()
	h.Ptr().add(c)
}

// DeregisterConnection removes the connection from the session's registry.
// It reports whether the connection was registered.
func (s *Session) DeregisterConnection(id ConnectionID) bool {
	h, ok := store.GetMut[ConnectionRegistry](s)
	if !ok {
		return false
	}
	defer h.Release()

	reg := h.Ptr()
	if _, ok := reg.conns[id]; !ok {
		return false
	}
	delete(reg.conns, id)
	return true
}

// Connections returns a snapshot of the session's live connections.
func (s *Session) Connections() []*Connection {
	reg, ok := store.GetCloned[ConnectionRegistry](s)
	if !ok {
		return nil
	}
	return reg.All()
}

func compareIDs(a, b ConnectionID) int {
	return bytes.Compare(a[:], b[:])
}
