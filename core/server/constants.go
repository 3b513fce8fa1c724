package server

import "time"

// Defaults applied by New and DefaultConfig.
const (
	DefaultAddr = ":8080"

	DefaultReadTimeout = 15 * time.Second
	// DefaultWriteTimeout bounds plain HTTP responses only. Upgraded websocket
	// connections set their own per-frame write deadline.
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = time.Minute
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMaxHeaderBytes = 1 << 20
)
