package store

import "reflect"

// Store is implemented by Local and Shared, and by any type embedding one of them.
// The generic functions in this package operate on any Store.
type Store interface {
	engine() engine
}

// engine is the storage backend behind a Store. Every value is kept boxed as a
// pointer to its type (*T), so in-place mutation never moves the value.
type engine interface {
	// read returns the boxed value with the slot read-locked.
	read(key reflect.Type) (val any, release func(), ok bool)
	// write returns the boxed value with the slot write-locked.
	write(key reflect.Type) (val any, release func(), ok bool)
	// insert returns the existing slot for key or creates it from create, write-locked.
	insert(key reflect.Type, create func() any) (val any, release func(), created bool)
	// remove deletes key. When lock is true the removed slot is returned read-locked.
	remove(key reflect.Type, lock bool) (val any, release func(), ok bool)
	has(key reflect.Type) bool
	size() int
}

// Key returns the type key under which values of type T are stored.
func Key[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Cloner lets a stored type control how snapshots are taken. GetCloned and
// RemoveGet call Clone when *T or T implements it, otherwise they copy the value.
type Cloner[T any] interface {
	Clone() T
}

func noop() {}

// ReadHandle is a read view of a stored value. The slot stays read-locked
// until Release is called.
type ReadHandle[T any] struct {
	ptr     *T
	release func()
	done    bool
}

// Value returns a copy of the stored value.
func (h *ReadHandle[T]) Value() T {
	return *h.ptr
}

// Release unlocks the slot. It is safe to call more than once.
func (h *ReadHandle[T]) Release() {
	if h.done {
		return
	}
	h.done = true
	h.release()
}

// WriteHandle is exclusive access to a stored value. The slot stays write-locked
// until Release is called.
type WriteHandle[T any] struct {
	ptr     *T
	release func()
	done    bool
}

// Value returns a copy of the stored value.
func (h *WriteHandle[T]) Value() T {
	return *h.ptr
}

// Ptr returns a pointer to the stored value. It must not be retained after Release.
func (h *WriteHandle[T]) Ptr() *T {
	return h.ptr
}

// Set replaces the stored value in place.
func (h *WriteHandle[T]) Set(v T) {
	*h.ptr = v
}

// Release unlocks the slot. It is safe to call more than once.
func (h *WriteHandle[T]) Release() {
	if h.done {
		return
	}
	h.done = true
	h.release()
}

// Get returns a read handle for the value of type T.
func Get[T any](s Store) (*ReadHandle[T], bool) {
	val, release, ok := s.engine().read(Key[T]())
	if !ok {
		return nil, false
	}
	ptr, ok := val.(*T)
	if !ok {
		release()
		return nil, false
	}
	return &ReadHandle[T]{ptr: ptr, release: release}, true
}

// GetMut returns a write handle for the value of type T.
func GetMut[T any](s Store) (*WriteHandle[T], bool) {
	val, release, ok := s.engine().write(Key[T]())
	if !ok {
		return nil, false
	}
	ptr, ok := val.(*T)
	if !ok {
		release()
		return nil, false
	}
	return &WriteHandle[T]{ptr: ptr, release: release}, true
}

// GetCloned returns a snapshot of the value of type T.
func GetCloned[T any](s Store) (T, bool) {
	h, ok := Get[T](s)
	if !ok {
		var zero T
		return zero, false
	}
	defer h.Release()
	return clone(h.ptr), true
}

// Exists reports whether a value of type T is stored.
func Exists[T any](s Store) bool {
	return s.engine().has(Key[T]())
}

// Len returns the number of stored values.
func Len(s Store) int {
	return s.engine().size()
}

// Insert stores v, replacing any existing value of type T in place.
func Insert[T any](s Store, v T) {
	e := s.engine()
	key := Key[T]()

	if val, release, ok := e.write(key); ok {
		if ptr, ok := val.(*T); ok {
			*ptr = v
		}
		release()
		return
	}

	val, release, created := e.insert(key, func() any {
		ptr := new(T)
		*ptr = v
		return ptr
	})
	if !created {
		// Lost the race against another insert; overwrite under the slot lock.
		if ptr, ok := val.(*T); ok {
			*ptr = v
		}
	}
	release()
}

// Remove deletes the value of type T.
func Remove[T any](s Store) {
	s.engine().remove(Key[T](), false)
}

// RemoveGet deletes the value of type T and returns it. For shared stores other
// holders may still reference the removed slot, so the value is duplicated.
func RemoveGet[T any](s Store) (T, bool) {
	var zero T
	val, release, ok := s.engine().remove(Key[T](), true)
	if !ok {
		return zero, false
	}
	defer release()
	ptr, ok := val.(*T)
	if !ok {
		return zero, false
	}
	return clone(ptr), true
}

// GetMutOrInsertWith returns a write handle for the value of type T, inserting
// the result of f first when no value is stored.
func GetMutOrInsertWith[T any](s Store, f func() T) *WriteHandle[T] {
	e := s.engine()
	key := Key[T]()

	if h, ok := GetMut[T](s); ok {
		return h
	}

	val, release, _ := e.insert(key, func() any {
		ptr := new(T)
		*ptr = f()
		return ptr
	})
	// Keys are derived from T, so the boxed value is always a *T.
	return &WriteHandle[T]{ptr: val.(*T), release: release}
}

// GetMutOrInsert is GetMutOrInsertWith using the zero value of T.
func GetMutOrInsert[T any](s Store) *WriteHandle[T] {
	return GetMutOrInsertWith(s, func() T {
		var zero T
		return zero
	})
}

// Update applies fn to the value of type T (the zero value when absent) under the
// slot's write lock. fn works on a copy; the copy is committed only when fn
// returns nil, otherwise the stored value is left untouched.
func Update[T any](s Store, fn func(v *T) error) error {
	h := GetMutOrInsert[T](s)
	defer h.Release()

	v := *h.ptr
	if err := fn(&v); err != nil {
		return err
	}
	*h.ptr = v
	return nil
}

func clone[T any](ptr *T) T {
	if c, ok := any(ptr).(Cloner[T]); ok {
		return c.Clone()
	}
	if c, ok := any(*ptr).(Cloner[T]); ok {
		return c.Clone()
	}
	return *ptr
}
