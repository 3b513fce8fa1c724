package broadcast_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wired/core/broadcast"
	"github.com/dmitrymomot/wired/core/config"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*broadcast.Config)
		wantErr bool
	}{
		{name: "defaults"},
		{name: "zero timeout", mutate: func(c *broadcast.Config) { c.SendTimeout = 0 }, wantErr: true},
		{
			name:    "timeout beyond uint32 millis",
			mutate:  func(c *broadcast.Config) { c.SendTimeout = time.Duration(math.MaxUint32+1) * time.Millisecond },
			wantErr: true,
		},
		{
			name:   "timeout at uint32 millis",
			mutate: func(c *broadcast.Config) { c.SendTimeout = time.Duration(math.MaxUint32) * time.Millisecond },
		},
		{name: "no parallel sends", mutate: func(c *broadcast.Config) { c.MaxParallelSends = 0 }, wantErr: true},
		{name: "at cap", mutate: func(c *broadcast.Config) { c.MaxParallelSends = broadcast.MaxParallelSendsCap }},
		{name: "above cap", mutate: func(c *broadcast.Config) { c.MaxParallelSends = broadcast.MaxParallelSendsCap + 1 }, wantErr: true},
		{
			name: "above cap allowed",
			mutate: func(c *broadcast.Config) {
				c.MaxParallelSends = broadcast.MaxParallelSendsCap + 1
				c.AllowHighParallelSends = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := broadcast.DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			err := cfg.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, broadcast.ErrInvalidConfig)
				_, err = broadcast.New(cfg)
				require.ErrorIs(t, err, broadcast.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("BROADCAST_SEND_TIMEOUT", "250ms")
	t.Setenv("BROADCAST_MAX_PARALLEL_SENDS", "8")
	config.Reset[broadcast.Config]()
	t.Cleanup(config.Reset[broadcast.Config])

	var cfg broadcast.Config
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, 250*time.Millisecond, cfg.SendTimeout)
	assert.Equal(t, int64(8), cfg.MaxParallelSends)
	assert.True(t, cfg.PruneClosed)
	assert.False(t, cfg.AllowHighParallelSends)
	require.NoError(t, cfg.Validate())
}
