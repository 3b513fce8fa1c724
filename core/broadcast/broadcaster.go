package broadcast

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/dmitrymomot/wired/core/logger"
	"github.com/dmitrymomot/wired/core/message"
	"github.com/dmitrymomot/wired/core/scope"
)

// Broadcaster delivers messages to the live connections of a session.
//
// Every send, across all broadcasts sharing the limiter, holds one permit of the
// limiter while it is in flight. A permit is returned only when the send has
// actually finished, even if the caller already gave up on it after the timeout.
type Broadcaster struct {
	limiter     *semaphore.Weighted
	timeout     time.Duration
	pruneClosed bool
	logger      *slog.Logger
	metrics     *Metrics
}

// Option configures a Broadcaster.
type Option func(*Broadcaster)

// WithLimiter shares an existing limiter, typically one constructed at startup
// and passed to every broadcaster in the process.
func WithLimiter(l *semaphore.Weighted) Option {
	return func(b *Broadcaster) {
		if l != nil {
			b.limiter = l
		}
	}
}

// WithLogger sets a custom logger for the broadcaster.
func WithLogger(l *slog.Logger) Option {
	return func(b *Broadcaster) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMetrics enables Prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(b *Broadcaster) { b.metrics = m }
}

// New creates a broadcaster. A limiter sized cfg.MaxParallelSends is created
// unless one is supplied with WithLimiter.
func New(cfg Config, opts ...Option) (*Broadcaster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Broadcaster{
		timeout:     cfg.SendTimeout,
		pruneClosed: cfg.PruneClosed,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.limiter == nil {
		b.limiter = semaphore.NewWeighted(cfg.MaxParallelSends)
	}
	return b, nil
}

// Send delivers m to every connection registered in the session of c and returns
// the number of successful deliveries.
//
// Connections that turn out to be closed are neither successes nor failures. Any
// other error, including a timeout, is a hard failure; when there is at least one,
// Send returns a *BatchSendError carrying all of them together with the success count.
func (b *Broadcaster) Send(ctx context.Context, c scope.SessionScoped, m message.Message) (int, error) {
	session := c.SessionScope()
	conns := session.Connections()
	if len(conns) == 0 {
		return 0, nil
	}

	start := time.Now()
	errs := make([]error, len(conns))

	var g errgroup.Group
	for i, conn := range conns {
		g.Go(func() error {
			errs[i] = b.deliver(ctx, conn, m)
			return nil
		})
	}
	_ = g.Wait()
	b.metrics.observe(time.Since(start).Seconds())

	batch := &BatchSendError{Attempted: len(conns)}
	for i, err := range errs {
		conn := conns[i]
		switch {
		case err == nil:
			batch.SuccessCount++
		case IsClosed(err):
			b.logger.DebugContext(ctx, "skipping closed connection",
				logger.Component("broadcast"),
				logger.SessionID(session.ID()),
				logger.ConnectionID(conn.ID()),
				logger.Error(err),
			)
			if b.pruneClosed {
				session.DeregisterConnection(conn.ID())
			}
		default:
			batch.Failures = append(batch.Failures, SendError{ConnectionID: conn.ID(), Err: err})
		}
	}

	if len(batch.Failures) == 0 {
		return batch.SuccessCount, nil
	}

	slices.SortFunc(batch.Failures, func(x, y SendError) int {
		return bytes.Compare(x.ConnectionID[:], y.ConnectionID[:])
	})
	b.logger.WarnContext(ctx, "broadcast partially failed",
		logger.Component("broadcast"),
		logger.SessionID(session.ID()),
		logger.Count("sent", batch.SuccessCount),
		logger.Count("failed", len(batch.Failures)),
	)
	return batch.SuccessCount, batch
}

// SendTo delivers m to a single connection under the same limiter and timeout
// as Send. Closed connections are reported as errors; use IsClosed to tell them apart.
func (b *Broadcaster) SendTo(ctx context.Context, conn *scope.Connection, m message.Message) error {
	return b.deliver(ctx, conn, m)
}

// deliver acquires a permit, then writes m with the configured timeout.
func (b *Broadcaster) deliver(ctx context.Context, conn *scope.Connection, m message.Message) error {
	if err := b.limiter.Acquire(ctx, 1); err != nil {
		b.metrics.result(resultError)
		return fmt.Errorf("acquire send permit: %w", err)
	}
	b.metrics.acquired()

	sendCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			b.metrics.released()
			b.limiter.Release(1)
		}()
		done <- write(sendCtx, conn, m)
	}()

	var err error
	select {
	case err = <-done:
	case <-sendCtx.Done():
		err = sendCtx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		err = fmt.Errorf("%w after %s", ErrSendTimeout, b.timeout)
	}

	switch {
	case err == nil:
		b.metrics.result(resultSuccess)
	case IsClosed(err):
		b.metrics.result(resultClosed)
	case errors.Is(err, ErrSendTimeout):
		b.metrics.result(resultTimeout)
	default:
		b.metrics.result(resultError)
	}
	return err
}
