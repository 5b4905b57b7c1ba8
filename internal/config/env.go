package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	DSN           string        `env:"DSN"`
	Storage       string        `env:"STORAGE"`
	LogLevel      string        `env:"LOG_LEVEL"`
	LogFormat     string        `env:"LOG_FORMAT"`
	AuditLogLimit int           `env:"AUDIT_LOG_LIMIT"`
	IdleLock      time.Duration `env:"IDLE_LOCK"`
}

// parseEnv overlays cfg with the REFLECT_* variables that are set.
func parseEnv(cfg *Config) error {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: "REFLECT_"}); err != nil {
		return fmt.Errorf("config: failed to parse environment: %w", err)
	}

	fileConfig{
		DSN:           ec.DSN,
		Storage:       ec.Storage,
		LogLevel:      ec.LogLevel,
		LogFormat:     ec.LogFormat,
		AuditLogLimit: ec.AuditLogLimit,
	}.apply(cfg)
	if ec.IdleLock != 0 {
		cfg.IdleLock = ec.IdleLock
	}
	return nil
}
