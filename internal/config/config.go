package config

import (
	"errors"
	"fmt"
	"time"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Config holds runtime settings for the reflect CLI.
type Config struct {
	DSN           string
	Storage       string
	LogLevel      string
	LogFormat     string
	AuditLogLimit int
	IdleLock      time.Duration
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DSN = "reflect.db"
	c.Storage = StorageSQLite
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.AuditLogLimit = 100
	c.IdleLock = 15 * time.Minute
}

// Load builds a Config from defaults, the config file, the environment and
// args (usually os.Args[1:]), in that order.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageSQLite:
		if c.DSN == "" {
			return errors.New("config: dsn is required for sqlite storage")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("config: unknown storage %q", c.Storage)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if c.AuditLogLimit <= 0 {
		return fmt.Errorf("config: audit log limit must be positive, got %d", c.AuditLogLimit)
	}
	if c.IdleLock < 0 {
		return fmt.Errorf("config: idle lock must not be negative, got %s", c.IdleLock)
	}
	return nil
}
