package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
)

type config struct {
	Addr   string `env:"ADDR" envDefault:":8000"`
	Env    string `env:"ENV" envDefault:"development"`
	APIURL string `env:"EXTERNAL_URL" envDefault:"localhost:8000"`
	DB     dbConfig
	CORS   corsConfig
}

type dbConfig struct {
	Driver      string `env:"DB_DRIVER" envDefault:"sqlite"`
	Addr        string `env:"DB_ADDR"`
	Path        string `env:"DB_PATH" envDefault:"qna.db"`
	MaxConns    int32  `env:"DB_MAX_CONNS" envDefault:"30"`
	MaxIdleTime string `env:"DB_MAX_IDLE_TIME" envDefault:"15m"`
}

type corsConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"https://*,http://*" envSeparator:","`
}

// loadConfig reads the configuration from the environment.
func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.DB.Driver {
	case driverSQLite:
	case driverPostgres:
		if cfg.DB.Addr == "" {
			return config{}, fmt.Errorf("DB_ADDR is required when DB_DRIVER=%s", driverPostgres)
		}
	default:
		return config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return cfg, nil
}
