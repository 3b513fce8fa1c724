package scope_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

type total int

func TestIDs(t *testing.T) {
	t.Parallel()

	id := scope.NewSessionID()
	assert.False(t, id.IsZero())
	assert.NotEqual(t, id, scope.NewSessionID())

	parsed, err := scope.ParseSessionID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = scope.ParseSessionID("nope")
	require.ErrorIs(t, err, scope.ErrInvalidID)

	cid := scope.NewConnectionID()
	pc, err := scope.ParseConnectionID(cid.String())
	require.NoError(t, err)
	assert.Equal(t, cid, pc)
	assert.True(t, scope.ConnectionID{}.IsZero())
}

func TestGlobalSessionRegistry(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	id := scope.NewSessionID()

	_, ok := g.LookupSession(id)
	assert.False(t, ok)

	s := g.Session(id)
	assert.Equal(t, id, s.ID())
	assert.Same(t, s, g.Session(id), "same id must resolve to the same session")

	other := g.NewSession()
	assert.NotEqual(t, s.ID(), other.ID())
	assert.Equal(t, 2, g.SessionCount())

	found, ok := g.LookupSession(id)
	require.True(t, ok)
	assert.Same(t, s, found)

	g.DropSession(id)
	_, ok = g.LookupSession(id)
	assert.False(t, ok)
	assert.Equal(t, 1, g.SessionCount())
}

func TestSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	a := g.NewSession()
	b := g.NewSession()

	store.Insert(a, total(10))
	assert.False(t, store.Exists[total](b))

	// session state is not visible in the global scope either
	assert.False(t, store.Exists[total](g))
}

func TestConcurrentSessionResolution(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	id := scope.NewSessionID()

	const workers = 32
	got := make([]*scope.Session, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		go func() {
			defer wg.Done()
			got[i] = g.Session(id)
		}()
	}
	wg.Wait()

	for _, s := range got {
		assert.Same(t, got[0], s)
	}
}

func TestConnectionRegistry(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	s := g.NewSession()
	assert.Empty(t, s.Connections())

	c1 := scope.NewConnection(s)
	c2 := scope.NewConnection(s)
	assert.Equal(t, s.ID(), c1.SessionID())
	assert.NotEqual(t, c1.ID(), c2.ID())

	s.RegisterConnection(c1)
	s.RegisterConnection(c2)
	assert.Len(t, s.Connections(), 2)

	reg, ok := store.GetCloned[scope.ConnectionRegistry](s)
	require.True(t, ok)
	got, ok := reg.Get(c1.ID())
	require.True(t, ok)
	assert.Same(t, c1, got)

	assert.True(t, s.DeregisterConnection(c1.ID()))
	assert.False(t, s.DeregisterConnection(c1.ID()))

	// the earlier snapshot is unaffected by deregistration
	assert.Equal(t, 2, reg.Len())

	conns := s.Connections()
	require.Len(t, conns, 1)
	assert.Same(t, c2, conns[0])
}

func TestConnectionRegistryOrdering(t *testing.T) {
	t.Parallel()

	s := scope.NewGlobal().NewSession()
	for range 10 {
		s.RegisterConnection(scope.NewConnection(s))
	}

	conns := s.Connections()
	require.Len(t, conns, 10)
	for i := 1; i < len(conns); i++ {
		assert.Less(t, conns[i-1].ID().String(), conns[i].ID().String())
	}
}

func TestCached(t *testing.T) {
	t.Parallel()

	c, err := scope.NewSessionlessBuilder().WithRequest(scope.NewRequest()).Build(scope.NewGlobal())
	require.NoError(t, err)

	calls := 0
	compute := func() (bool, error) {
		calls++
		return true, nil
	}

	v, err := scope.Cached(c, compute)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = scope.Cached(c, compute)
	require.NoError(t, err)
	assert.True(t, v)
	assert.Equal(t, 1, calls)

	errBoom := errors.New("boom")
	_, err = scope.Cached(c, func() (string, error) { return "", errBoom })
	require.ErrorIs(t, err, errBoom)

	s, err := scope.Cached(c, func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", s, "failed computations must not be cached")
}

func TestDropIdleSessions(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	idle := g.NewSession()
	busy := g.NewSession()
	busy.RegisterConnection(scope.NewConnection(busy))

	time.Sleep(5 * time.Millisecond)
	cutoff := time.Now()
	fresh := g.NewSession()

	assert.Equal(t, 1, g.DropIdleSessions(cutoff))
	assert.Equal(t, 2, g.SessionCount())

	_, ok := g.LookupSession(idle.ID())
	assert.False(t, ok, "idle session without connections is dropped")
	_, ok = g.LookupSession(busy.ID())
	assert.True(t, ok, "a session with live connections is kept")
	_, ok = g.LookupSession(fresh.ID())
	assert.True(t, ok)
}

func TestSessionLookupMarksSeen(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	s := g.NewSession()
	before := s.LastSeen()

	time.Sleep(2 * time.Millisecond)
	g.Session(s.ID())
	assert.True(t, s.LastSeen().After(before))
	assert.Zero(t, g.DropIdleSessions(before.Add(time.Millisecond)))
}

func TestDetachedSession(t *testing.T) {
	t.Parallel()

	g := scope.NewGlobal()
	s := scope.NewDetachedSession()
	assert.False(t, s.ID().IsZero())
	_, ok := g.LookupSession(s.ID())
	assert.False(t, ok)
	assert.Zero(t, g.SessionCount())
}
