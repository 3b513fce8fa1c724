package store

import (
	"reflect"
	"sync"
)

// Shared is a type-keyed store safe for concurrent use. The zero value is ready to use.
//
// The structural lock is held only while the key set is read or changed and is
// never held while waiting for a slot lock.
type Shared struct {
	mu    sync.RWMutex
	slots map[reflect.Type]*slot
}

type slot struct {
	mu  sync.RWMutex
	val any
}

// NewShared creates an empty concurrent store.
func NewShared() *Shared {
	return &Shared{slots: make(map[reflect.Type]*slot)}
}

func (s *Shared) engine() engine { return s }

func (s *Shared) lookup(key reflect.Type) (*slot, bool) {
	s.mu.RLock()
	sl, ok := s.slots[key]
	s.mu.RUnlock()
	return sl, ok
}

func (s *Shared) read(key reflect.Type) (any, func(), bool) {
	sl, ok := s.lookup(key)
	if !ok {
		return nil, nil, false
	}
	sl.mu.RLock()
	return sl.val, sl.mu.RUnlock, true
}

func (s *Shared) write(key reflect.Type) (any, func(), bool) {
	sl, ok := s.lookup(key)
	if !ok {
		return nil, nil, false
	}
	sl.mu.Lock()
	return sl.val, sl.mu.Unlock, true
}

func (s *Shared) insert(key reflect.Type, create func() any) (any, func(), bool) {
	s.mu.Lock()
	if s.slots == nil {
		s.slots = make(map[reflect.Type]*slot)
	}
	if sl, ok := s.slots[key]; ok {
		s.mu.Unlock()
		sl.mu.Lock()
		return sl.val, sl.mu.Unlock, false
	}

	sl := &slot{val: create()}
	// Locked before publication, so no other goroutine can observe it unlocked.
	sl.mu.Lock()
	s.slots[key] = sl
	s.mu.Unlock()
	return sl.val, sl.mu.Unlock, true
}

func (s *Shared) remove(key reflect.Type, lock bool) (any, func(), bool) {
	s.mu.Lock()
	sl, ok := s.slots[key]
	if ok {
		delete(s.slots, key)
	}
	s.mu.Unlock()

	if !ok {
		return nil, nil, false
	}
	if !lock {
		return sl.val, noop, true
	}
	sl.mu.RLock()
	return sl.val, sl.mu.RUnlock, true
}

func (s *Shared) has(key reflect.Type) bool {
	_, ok := s.lookup(key)
	return ok
}

func (s *Shared) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}
