package body

import (
	"fmt"

	"github.com/dmitrymomot/wired/core/binder"
	"github.com/dmitrymomot/wired/core/message"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

// payload is the undecoded inbound body of a unit of work.
type payload struct {
	data        []byte
	contentType string
	frame       message.Type // zero for HTTP bodies
}

type consumed struct{}

type rawQuery string

type decoded[T any] struct {
	value T
}

type query[T any] struct {
	value T
}

// SeedHTTP stores an HTTP request body and query string in the request scope.
func SeedHTTP(r *scope.Request, data []byte, contentType, rawQueryString string) {
	store.Insert(r, payload{data: data, contentType: contentType})
	store.Insert(r, rawQuery(rawQueryString))
}

// SeedMessage stores a received frame in the request scope. Frames are decoded as JSON.
func SeedMessage(r *scope.Request, m message.Message) {
	store.Insert(r, payload{data: m.Data, frame: m.Type})
	store.Insert(r, m)
}

// Bytes consumes the raw body. Any later Bytes or Decode call fails with ErrAlreadyParsed.
func Bytes(c scope.RequestScoped) ([]byte, error) {
	r := c.RequestScope()
	p, err := take(r)
	if err != nil {
		return nil, err
	}
	return p.data, nil
}

// Decode consumes the body and decodes it into T. Later Decode calls for the
// same T return the cached value; decoding into another type, or reading
// Bytes, fails with ErrAlreadyParsed.
func Decode[T any](c scope.RequestScoped) (T, error) {
	r := c.RequestScope()
	if d, ok := store.GetCloned[decoded[T]](r); ok {
		return d.value, nil
	}

	var v T
	p, err := take(r)
	if err != nil {
		return v, err
	}
	dec, err := binder.ForContentType(p.contentType)
	if err != nil {
		return v, err
	}
	if err := dec(p.data, &v); err != nil {
		return v, err
	}
	store.Insert(r, decoded[T]{value: v})
	return v, nil
}

// Get returns a value previously produced by Decode.
func Get[T any](c scope.RequestScoped) (T, bool) {
	d, ok := store.GetCloned[decoded[T]](c.RequestScope())
	return d.value, ok
}

// Message returns the frame a websocket unit of work was seeded with.
func Message(c scope.RequestScoped) (message.Message, bool) {
	return store.GetCloned[message.Message](c.RequestScope())
}

// Query decodes the query string into T. Results are cached per type, so
// repeated calls are cheap and never fail with ErrAlreadyParsed.
func Query[T any](c scope.RequestScoped) (T, error) {
	r := c.RequestScope()
	if q, ok := store.GetCloned[query[T]](r); ok {
		return q.value, nil
	}

	var v T
	raw, _ := store.GetCloned[rawQuery](r)
	if err := binder.Query(string(raw), &v); err != nil {
		return v, err
	}
	store.Insert(r, query[T]{value: v})
	return v, nil
}

func take(r *scope.Request) (payload, error) {
	if store.Exists[consumed](r) {
		return payload{}, ErrAlreadyParsed
	}
	p, ok := store.GetCloned[payload](r)
	if !ok {
		return payload{}, ErrNoBody
	}
	if p.frame != 0 && !p.frame.IsData() {
		return payload{}, fmt.Errorf("%w: %s", ErrInvalidMessageType, p.frame)
	}
	store.Insert(r, consumed{})
	return p, nil
}
