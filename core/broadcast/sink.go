package broadcast

import (
	"context"

	"github.com/dmitrymomot/wired/core/message"
	"github.com/dmitrymomot/wired/core/scope"
	"github.com/dmitrymomot/wired/core/store"
)

// Sink writes frames to one live connection. Implementations report
// ErrConnectionClosed or ErrAlreadyClosed when the connection is gone and
// should honour ctx cancellation.
//
// Sends to one connection are serialised by its connection scope, so a Sink
// never sees concurrent Send calls from this package.
type Sink interface {
	Send(ctx context.Context, m message.Message) error
}

// SinkFunc adapts a function into a Sink.
type SinkFunc func(ctx context.Context, m message.Message) error

func (f SinkFunc) Send(ctx context.Context, m message.Message) error { return f(ctx, m) }

// Attach stores the sink of a connection in its scope.
func Attach(conn *scope.Connection, s Sink) {
	store.Insert[Sink](conn, s)
}

// Detach removes the sink of a connection.
func Detach(conn *scope.Connection) {
	store.Remove[Sink](conn)
}

// write sends m through the connection's sink while holding the sink's slot,
// which keeps writes to one connection sequential.
func write(ctx context.Context, conn *scope.Connection, m message.Message) error {
	h, ok := store.GetMut[Sink](conn)
	if !ok {
		return ErrNoSink
	}
	defer h.Release()
	return h.Value().Send(ctx, m)
}
