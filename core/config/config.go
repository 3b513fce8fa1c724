package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/wired/core/store"
)

// ErrParsing is returned when environment variables cannot be parsed into the target struct.
var ErrParsing = errors.New("config: failed to parse environment")

var (
	loadDotEnv sync.Once
	cache      = store.NewShared()
)

// Load fills cfg from the environment. The first successful load of a type is cached
// and every later call for the same type copies the cached value into cfg.
func Load[T any](cfg *T) error {
	loadDotEnv.Do(func() {
		// A missing .env file is not an error.
		_ = godotenv.Load()
	})

	h := store.GetMutOrInsert[entry[T]](cache)
	defer h.Release()

	e := h.Ptr()
	if !e.loaded {
		var v T
		if err := env.Parse(&v); err != nil {
			return errors.Join(ErrParsing, err)
		}
		e.value = v
		e.loaded = true
	}
	*cfg = e.value
	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// Reset drops the cached value for T so the next Load reads the environment again.
func Reset[T any]() {
	store.Remove[entry[T]](cache)
}

type entry[T any] struct {
	value  T
	loaded bool
}
