package main

import (
	"github.com/dmitrymomot/wired/core/broadcast"
	"github.com/dmitrymomot/wired/core/server"
	"github.com/dmitrymomot/wired/core/transport"
)

// Config is the application configuration. The database integrations are
// loaded separately and only when their connection URL is set.
type Config struct {
	AppName        string `env:"APP_NAME" envDefault:"wired"`
	AppEnv         string `env:"APP_ENV" envDefault:"development"`
	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`

	Server    server.Config
	Transport transport.Config
	Broadcast broadcast.Config
}
