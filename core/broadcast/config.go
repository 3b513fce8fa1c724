package broadcast

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultSendTimeout bounds a single send.
	DefaultSendTimeout = 5 * time.Second
	// DefaultMaxParallelSends is the default process-wide in-flight send limit.
	DefaultMaxParallelSends = 250
	// MaxParallelSendsCap is the highest limit accepted without AllowHighParallelSends.
	MaxParallelSendsCap = 10_000
)

// Config holds broadcaster settings.
type Config struct {
	SendTimeout            time.Duration `env:"BROADCAST_SEND_TIMEOUT" envDefault:"5s"`
	MaxParallelSends       int64         `env:"BROADCAST_MAX_PARALLEL_SENDS" envDefault:"250"`
	AllowHighParallelSends bool          `env:"BROADCAST_ALLOW_HIGH_PARALLEL_SENDS" envDefault:"false"`
	// PruneClosed removes connections reporting a closed transport from the
	// session registry instead of waiting for their receive loop to do it.
	PruneClosed bool `env:"BROADCAST_PRUNE_CLOSED" envDefault:"true"`
}

// DefaultConfig returns the defaults used when no environment is loaded.
func DefaultConfig() Config {
	return Config{
		SendTimeout:      DefaultSendTimeout,
		MaxParallelSends: DefaultMaxParallelSends,
		PruneClosed:      true,
	}
}

// Validate checks the timeout fits in a uint32 millisecond count and the
// parallel send limit is within bounds.
func (c Config) Validate() error {
	if c.SendTimeout <= 0 {
		return fmt.Errorf("%w: send timeout must be positive", ErrInvalidConfig)
	}
	if c.SendTimeout.Milliseconds() > math.MaxUint32 {
		return fmt.Errorf("%w: send timeout %s exceeds %d ms", ErrInvalidConfig, c.SendTimeout, uint64(math.MaxUint32))
	}
	if c.MaxParallelSends < 1 {
		return fmt.Errorf("%w: max parallel sends must be at least 1", ErrInvalidConfig)
	}
	if c.MaxParallelSends > MaxParallelSendsCap && !c.AllowHighParallelSends {
		return fmt.Errorf("%w: max parallel sends %d exceeds %d, set AllowHighParallelSends to override",
			ErrInvalidConfig, c.MaxParallelSends, MaxParallelSendsCap)
	}
	return nil
}
