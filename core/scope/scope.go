package scope

import (
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/wired/core/store"
)

// Global lives for the whole process and is shared by every unit of work.
// Copying the pointer yields another handle to the same store.
type Global struct {
	*store.Shared
}

// NewGlobal creates the process-wide scope.
func NewGlobal() *Global {
	return &Global{Shared: store.NewShared()}
}

// GlobalScope returns g, so a bare Global can stand in for a context.
func (g *Global) GlobalScope() *Global { return g }

// Session is shared by every unit of work carrying the same session id.
type Session struct {
	*store.Shared
	id       SessionID
	lastSeen atomic.Int64 // unix nanoseconds
}

func newSession(id SessionID) *Session {
	s := &Session{Shared: store.NewShared(), id: id}
	s.touch()
	return s
}

// NewDetachedSession creates a session with a fresh id that is not registered
// in any global scope. It lives as long as the caller holds it.
func NewDetachedSession() *Session {
	return newSession(NewSessionID())
}

// ID returns the session id.
func (s *Session) ID() SessionID { return s.id }

// LastSeen returns when the session was last looked up through Global.Session.
func (s *Session) LastSeen() time.Time { return time.Unix(0, s.lastSeen.Load()) }

func (s *Session) touch() { s.lastSeen.Store(time.Now().UnixNano()) }

// Connection belongs to one live connection and is shared by its receive loop,
// the session's connection registry, and every message handled on it.
type Connection struct {
	*store.Shared
	id      ConnectionID
	session SessionID
}

// NewConnection creates the scope for a freshly upgraded connection of session s.
func NewConnection(s *Session) *Connection {
	return &Connection{Shared: store.NewShared(), id: NewConnectionID(), session: s.id}
}

// ID returns the connection id.
func (c *Connection) ID() ConnectionID { return c.id }

// SessionID returns the id of the session the connection belongs to.
func (c *Connection) SessionID() SessionID { return c.session }

// Request is owned by exactly one unit of work and is never shared.
type Request struct {
	*store.Local
}

// NewRequest creates an empty request scope.
func NewRequest() *Request {
	return &Request{Local: store.NewLocal()}
}

type sessionRegistry struct {
	sessions map[SessionID]*Session
}

// Session returns the session scope for id, creating it on first contact.
// Every call marks the session as seen.
func (g *Global) Session(id SessionID) *Session {
	h := store.GetMutOrInsert[sessionRegistry](g)
	defer h.Release()

	reg := h.Ptr()
	if s, ok := reg.sessions[id]; ok {
		s.touch()
		return s
	}
	if reg.sessions == nil {
		reg.sessions = make(map[SessionID]*Session)
	}
	s := newSession(id)
	reg.sessions[id] = s
	return s
}

// NewSession creates a session with a fresh id and registers it.
func (g *Global) NewSession() *Session {
	return g.Session(NewSessionID())
}

// LookupSession returns the session scope for id without creating it.
func (g *Global) LookupSession(id SessionID) (*Session, bool) {
	h, ok := store.Get[sessionRegistry](g)
	if !ok {
		return nil, false
	}
	defer h.Release()
	s, ok := h.Value().sessions[id]
	return s, ok
}

// DropSession removes the session from the registry. Contexts still holding the
// session keep a valid handle until they finish.
func (g *Global) DropSession(id SessionID) {
	if h, ok := store.GetMut[sessionRegistry](g); ok {
		delete(h.Ptr().sessions, id)
		h.Release()
	}
}

// SessionCount returns the number of registered sessions.
func (g *Global) SessionCount() int {
	h, ok := store.Get[sessionRegistry](g)
	if !ok {
		return 0
	}
	defer h.Release()
	return len(h.Value().sessions)
}

// DropIdleSessions removes every session last seen before cutoff that has no
// live connection, and returns how many were removed.
func (g *Global) DropIdleSessions(cutoff time.Time) int {
	h, ok := store.GetMut[sessionRegistry](g)
	if !ok {
		return 0
	}
	defer h.Release()

	dropped := 0
	for id, s := range h.Ptr().sessions {
		if !s.LastSeen().Before(cutoff) || len(s.Connections()) > 0 {
			continue
		}
		delete(h.Ptr().sessions, id)
		dropped++
	}
	return dropped
}
