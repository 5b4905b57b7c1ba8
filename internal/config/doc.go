// Package config loads runtime configuration for the reflect CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. A .yaml or .yml
//     extension selects YAML, anything else is read as JSON.
//  3. Environment variables with the REFLECT_ prefix.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string     SQLite database path (DSN)
//	-s string     storage backend: sqlite or memory
//	-l string     log level: debug, info, warn, error
//	-f string     log format: text or json
//	-i duration   lock the journal after this much inactivity (0 disables)
//
// # File schema
//
// Durations may be strings like "15m" or integer nanoseconds:
//
//	{
//	  "dsn": "journal.db",
//	  "storage": "sqlite",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "audit_log_limit": 100,
//	  "idle_lock": "15m"
//	}
//
// # Environment
//
//	REFLECT_DSN, REFLECT_STORAGE, REFLECT_LOG_LEVEL, REFLECT_LOG_FORMAT,
//	REFLECT_AUDIT_LOG_LIMIT, REFLECT_IDLE_LOCK
package config
