package transport

import "time"

// Config holds the HTTP and websocket settings of the transport. Zero fields
// take the values of DefaultConfig when a Handler or WebSocket is built.
type Config struct {
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"wired_session"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`
	// SessionIdleTimeout drops in-process sessions not seen for this long and
	// without live connections. A negative value disables the sweep.
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"1h"`
	SecureCookie       bool          `env:"SESSION_SECURE_COOKIE" envDefault:"false"`
	MaxBodySize        int64         `env:"HTTP_MAX_BODY_SIZE" envDefault:"1048576"`

	WSReadBufferSize   int           `env:"WS_READ_BUFFER_SIZE" envDefault:"1024"`
	WSWriteBufferSize  int           `env:"WS_WRITE_BUFFER_SIZE" envDefault:"1024"`
	WSReadLimit        int64         `env:"WS_READ_LIMIT" envDefault:"1048576"`
	WSWriteTimeout     time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"10s"`
	WSHandshakeTimeout time.Duration `env:"WS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	WSAllowAnyOrigin   bool          `env:"WS_ALLOW_ANY_ORIGIN" envDefault:"false"`
}

// DefaultConfig returns the values used when no environment is set.
func DefaultConfig() Config {
	return Config{
		SessionCookie:      "wired_session",
		SessionMaxAge:      30 * 24 * time.Hour,
		SessionIdleTimeout: time.Hour,
		MaxBodySize:        1 << 20,
		WSReadBufferSize:   1024,
		WSWriteBufferSize:  1024,
		WSReadLimit:        1 << 20,
		WSWriteTimeout:     10 * time.Second,
		WSHandshakeTimeout: 10 * time.Second,
	}
}

// withDefaults fills zero or negative sizes and durations from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SessionCookie == "" {
		c.SessionCookie = d.SessionCookie
	}
	if c.SessionMaxAge <= 0 {
		c.SessionMaxAge = d.SessionMaxAge
	}
	if c.SessionIdleTimeout == 0 {
		c.SessionIdleTimeout = d.SessionIdleTimeout
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = d.MaxBodySize
	}
	if c.WSReadBufferSize <= 0 {
		c.WSReadBufferSize = d.WSReadBufferSize
	}
	if c.WSWriteBufferSize <= 0 {
		c.WSWriteBufferSize = d.WSWriteBufferSize
	}
	if c.WSReadLimit <= 0 {
		c.WSReadLimit = d.WSReadLimit
	}
	if c.WSWriteTimeout <= 0 {
		c.WSWriteTimeout = d.WSWriteTimeout
	}
	if c.WSHandshakeTimeout <= 0 {
		c.WSHandshakeTimeout = d.WSHandshakeTimeout
	}
	return c
}
