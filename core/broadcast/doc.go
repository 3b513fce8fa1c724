// Package broadcast fans a message out to every live connection of a session.
//
// Connections are found through the session's scope.ConnectionRegistry; each
// connection scope carries a Sink attached by the transport when the connection
// was upgraded.
//
// # Usage
//
//	limiter := semaphore.NewWeighted(250) // shared by the whole process
//
//	b, err := broadcast.New(broadcast.DefaultConfig(),
//		broadcast.WithLimiter(limiter),
//		broadcast.WithLogger(log),
//	)
//
//	// inside a handler
//	n, err := b.Send(ctx, c, message.NewText("hello"))
//	var batch *broadcast.BatchSendError
//	if errors.As(err, &batch) {
//		// n == batch.SuccessCount; batch.Failures lists every hard failure
//	}
//
// # Delivery Semantics
//
//   - One goroutine per connection. Each send first takes a permit from the
//     limiter, which bounds in-flight sends across every broadcast sharing it.
//   - Each send is bounded by Config.SendTimeout; a timeout is a hard failure
//     wrapping ErrSendTimeout.
//   - Sinks reporting ErrConnectionClosed or ErrAlreadyClosed are skipped: they
//     count as neither success nor failure and are logged at debug level. With
//     Config.PruneClosed they are also removed from the session registry.
//   - Every other error is recorded in a *BatchSendError, ordered by connection id.
//     One failing connection never stops delivery to the others.
//
// Writes to one connection are serialised through its connection scope, so
// handlers replying with SendTo and concurrent broadcasts never interleave frames.
//
// # Configuration
//
// Config is loaded from the environment with core/config:
//
//	BROADCAST_SEND_TIMEOUT=5s
//	BROADCAST_MAX_PARALLEL_SENDS=250
//	BROADCAST_ALLOW_HIGH_PARALLEL_SENDS=false
//	BROADCAST_PRUNE_CLOSED=true
//
// Limits above MaxParallelSendsCap require AllowHighParallelSends, and the
// timeout must fit in a uint32 millisecond count.
package broadcast
