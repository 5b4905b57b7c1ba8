package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/reflect/internal/flagx"
)

// parseFlags overlays cfg with the flags present in args. Flags owned by
// other loaders (-c/-config) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-s", "-l", "-f", "-i"})

	fs := flag.NewFlagSet("reflect", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DSN, "d", cfg.DSN, "SQLite database path")
	fs.StringVar(&cfg.Storage, "s", cfg.Storage, "storage backend (sqlite or memory)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text or json)")
	fs.DurationVar(&cfg.IdleLock, "i", cfg.IdleLock, "idle time before the journal locks itself")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
