package scope

import "github.com/dmitrymomot/wired/core/store"

type cached[T any] struct {
	value T
}

// Cached computes a value once per unit of work and stores it in the request scope.
// Later calls in the same unit of work return the stored value. Failed computations
// are not cached.
func Cached[T any](c RequestScoped, compute func() (T, error)) (T, error) {
	r := c.RequestScope()
	if v, ok := store.GetCloned[cached[T]](r); ok {
		return v.value, nil
	}

	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	store.Insert(r, cached[T]{value: v})
	return v, nil
}
