package broadcast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/wired/core/scope"
)

var (
	// ErrConnectionClosed is reported by sinks whose peer closed the connection normally.
	ErrConnectionClosed = errors.New("connection closed")
	// ErrAlreadyClosed is reported by sinks whose connection was closed before the send.
	ErrAlreadyClosed = errors.New("connection already closed")
	// ErrSendTimeout is reported when a send does not finish within the configured timeout.
	ErrSendTimeout = errors.New("send timed out")
	// ErrNoSink is reported for registered connections without an attached sink.
	ErrNoSink = errors.New("connection has no sink")
	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("invalid broadcast config")
)

// IsClosed reports whether err means the connection is gone. Such errors are
// expected during fan-out and are not counted as failures.
func IsClosed(err error) bool {
	return errors.Is(err, ErrConnectionClosed) || errors.Is(err, ErrAlreadyClosed)
}

// SendError is a hard failure delivering to one connection.
type SendError struct {
	ConnectionID scope.ConnectionID
	Err          error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("send to %s: %v", e.ConnectionID, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// BatchSendError is returned by Broadcaster.Send when at least one connection
// failed. Failures are ordered by connection id.
type BatchSendError struct {
	Failures     []SendError
	SuccessCount int
	Attempted    int
}

func (e *BatchSendError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "broadcast: %d of %d sends failed", len(e.Failures), e.Attempted)
	for i := range e.Failures {
		b.WriteString("; ")
		b.WriteString(e.Failures[i].Error())
	}
	return b.String()
}

// Unwrap exposes every failure to errors.Is and errors.As.
func (e *BatchSendError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i := range e.Failures {
		errs[i] = &e.Failures[i]
	}
	return errs
}
