// Package store provides type-keyed value containers: each store holds at most one
// value per Go type, and values are looked up by their static type rather than by name.
//
// Two flavours share one generic API:
//
//   - Local is an exclusive, single-owner store. It performs no locking and must not be
//     used from more than one goroutine at a time.
//   - Shared is safe for concurrent use. A structural lock guards the key set and every
//     slot carries its own read/write lock, so long-held writers of one type never block
//     readers or writers of another type.
//
// # Basic Usage
//
//	type Counter struct{ N int }
//
//	s := store.NewShared()
//	store.Insert(s, Counter{N: 1})
//
//	if c, ok := store.GetCloned[Counter](s); ok {
//		fmt.Println(c.N)
//	}
//
//	// Mutate in place while holding the slot's write lock
//	h := store.GetMutOrInsert[Counter](s)
//	h.Ptr().N++
//	h.Release()
//
// # Handles
//
// Get and GetMut return handles that keep the slot locked until Release is called.
// For Local stores releasing is a no-op, but calling it keeps code portable between
// flavours. Handles are single-owner values and must not be shared between goroutines.
//
// Inserting a value for a type that is already present overwrites the slot in place
// under its write lock. The slot keeps its identity, so a holder of an older handle
// observes the new value once it reacquires the slot.
//
// # Insert-or-get
//
// GetMutOrInsertWith performs the existence check and the structural insert under a
// single structural lock acquisition. Concurrent callers racing on a missing type all
// end up with the same slot; the default constructor runs at most once per insert and
// is executed while the structural lock is held, so it must be cheap and must not
// touch the same store.
package store
