package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

// SessionIDs records every session id handed out, so a cookie is only trusted
// when it carries an id this process (or a shared backend) issued.
type SessionIDs interface {
	// Issue generates and records a fresh id. Issued ids are never reused.
	Issue(ctx context.Context) (scope.SessionID, error)
	// Known reports whether id was issued earlier.
	Known(ctx context.Context, id scope.SessionID) (bool, error)
}

// SessionIDPruner is implemented by registries that must be told to forget
// ids. The Handler calls Prune with the oldest last-use time to keep.
type SessionIDPruner interface {
	Prune(ctx context.Context, cutoff time.Time) (int, error)
}

// issuedIDs is kept in the global scope by MemorySessionIDs. Values are the
// last time an id was issued or presented.
type issuedIDs struct {
	ids map[scope.SessionID]time.Time
}

// MemorySessionIDs keeps issued ids in the global scope. Ids do not survive a
// restart; use the redis integration to share them between processes.
type MemorySessionIDs struct {
	global *scope.Global
}

// NewMemorySessionIDs creates an in-process id registry stored in g.
func NewMemorySessionIDs(g *scope.Global) *MemorySessionIDs {
	return &MemorySessionIDs{global: g}
}

// Issue implements SessionIDs.
func (m *MemorySessionIDs) Issue(context.Context) (scope.SessionID, error) {
	h := store.GetMutOrInsertWith(m.global, func() issuedIDs {
		return issuedIDs{ids: make(map[scope.SessionID]time.Time)}
	})
	defer h.Release()

	for {
		id := scope.NewSessionID()
		if _, taken := h.Ptr().ids[id]; taken {
			continue
		}
		h.Ptr().ids[id] = time.Now()
		return id, nil
	}
}

// Known implements SessionIDs. A known id has its last-use time refreshed.
func (m *MemorySessionIDs) Known(_ context.Context, id scope.SessionID) (bool, error) {
	h, ok := store.GetMut[issuedIDs](m.global)
	if !ok {
		return false, nil
	}
	defer h.Release()
	if _, known := h.Ptr().ids[id]; !known {
		return false, nil
	}
	h.Ptr().ids[id] = time.Now()
	return true, nil
}

// Prune implements SessionIDPruner by forgetting ids last used before cutoff.
func (m *MemorySessionIDs) Prune(_ context.Context, cutoff time.Time) (int, error) {
	h, ok := store.GetMut[issuedIDs](m.global)
	if !ok {
		return 0, nil
	}
	defer h.Release()

	pruned := 0
	for id, used := range h.Ptr().ids {
		if used.Before(cutoff) {
			delete(h.Ptr().ids, id)
			pruned++
		}
	}
	return pruned, nil
}

// Len returns the number of ids currently known.
func (m *MemorySessionIDs) Len() int {
	h, ok := store.Get[issuedIDs](m.global)
	if !ok {
		return 0
	}
	defer h.Release()
	return len(h.Value().ids)
}

// resolveSession returns the session named by the request cookie. A missing,
// malformed or unknown id is replaced by a freshly issued one and the cookie is
// set on w. An unknown id also drops whatever session the process still holds
// for it. Requests to sessionless paths without a valid cookie get a detached
// session and no cookie.
func (h *Handler) resolveSession(w http.ResponseWriter, r *http.Request) (*scope.Session, error) {
	ctx := r.Context()
	if cookie, err := r.Cookie(h.cfg.SessionCookie); err == nil {
		if id, err := scope.ParseSessionID(cookie.Value); err == nil {
			known, err := h.ids.Known(ctx, id)
			if err != nil {
				return nil, err
			}
			if known {
				return h.global.Session(id), nil
			}
			h.global.DropSession(id)
		}
	}

	if h.sessionless(r.URL.Path) {
		return scope.NewDetachedSession(), nil
	}

	id, err := h.ids.Issue(ctx)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.SessionCookie,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   int(h.cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return h.global.Session(id), nil
}

// sessionless reports whether path equals or lies under a sessionless prefix.
func (h *Handler) sessionless(path string) bool {
	for _, p := range h.sessionlessPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// sweepSessions drops idle sessions and prunes the id registry, at most once
// per sweep interval across all requests.
func (h *Handler) sweepSessions(ctx context.Context) {
	idle := h.cfg.SessionIdleTimeout
	if idle < 0 {
		return
	}
	now := time.Now()
	last := h.lastSweep.Load()
	if now.UnixNano()-last < int64(sweepInterval(idle)) || !h.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		return
	}

	dropped := h.global.DropIdleSessions(now.Add(-idle))
	pruned := 0
	if p, ok := h.ids.(SessionIDPruner); ok {
		n, err := p.Prune(ctx, now.Add(-h.cfg.SessionMaxAge))
		if err != nil {
			h.logger.WarnContext(ctx, "failed to prune session ids", logger.Component("transport"), logger.Error(err))
		}
		pruned = n
	}
	if dropped > 0 || pruned > 0 {
		h.logger.DebugContext(ctx, "sessions swept",
			logger.Component("transport"),
			logger.Key("dropped", dropped),
			logger.Key("pruned", pruned),
		)
	}
}

func sweepInterval(idle time.Duration) time.Duration {
	return min(idle/2, time.Minute)
}
