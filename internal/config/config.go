package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr      string `envconfig:"HTTP_ADDR" default:":8080"`
	DatabasePath  string `envconfig:"DATABASE_PATH" default:"clients.db"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"change-this-secret"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
