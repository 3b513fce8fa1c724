package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wired/core/config"
)

type cachedConfig struct {
	Name    string        `env:"WIRED_TEST_CONFIG_NAME" envDefault:"default"`
	Timeout time.Duration `env:"WIRED_TEST_CONFIG_TIMEOUT" envDefault:"2s"`
}

type requiredConfig struct {
	Value string `env:"WIRED_TEST_CONFIG_REQUIRED,required"`
}

func TestLoadDefaultsAndCache(t *testing.T) {
	t.Setenv("WIRED_TEST_CONFIG_NAME", "first")
	config.Reset[cachedConfig]()

	var cfg cachedConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "first", cfg.Name)
	assert.Equal(t, 2*time.Second, cfg.Timeout)

	t.Setenv("WIRED_TEST_CONFIG_NAME", "second")
	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Name, "cached value must be reused")

	config.Reset[cachedConfig]()
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "second", again.Name)
}

func TestLoadRequiredMissing(t *testing.T) {
	config.Reset[requiredConfig]()

	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsing)

	assert.Panics(t, func() { config.MustLoad(&cfg) })

	t.Setenv("WIRED_TEST_CONFIG_REQUIRED", "ok")
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "ok", cfg.Value)
}
