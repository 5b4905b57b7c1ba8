package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/reflect/internal/flagx"
	"github.com/dmitrijs2005/reflect/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape of the config file, JSON or YAML.
type fileConfig struct {
	DSN           string         `json:"dsn" yaml:"dsn"`
	Storage       string         `json:"storage" yaml:"storage"`
	LogLevel      string         `json:"log_level" yaml:"log_level"`
	LogFormat     string         `json:"log_format" yaml:"log_format"`
	AuditLogLimit int            `json:"audit_log_limit" yaml:"audit_log_limit"`
	IdleLock      timex.Duration `json:"idle_lock" yaml:"idle_lock"`
}

// parseFile overlays cfg with the fields set in the file named by -c/-config.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.DSN != "" {
		cfg.DSN = fc.DSN
	}
	if fc.Storage != "" {
		cfg.Storage = fc.Storage
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	if fc.AuditLogLimit != 0 {
		cfg.AuditLogLimit = fc.AuditLogLimit
	}
	if fc.IdleLock.Duration != 0 {
		cfg.IdleLock = fc.IdleLock.Duration
	}
}
