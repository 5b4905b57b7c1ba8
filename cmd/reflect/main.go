package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/reflect/internal/buildinfo"
	"github.com/dmitrijs2005/reflect/internal/cli"
	"github.com/dmitrijs2005/reflect/internal/config"
	"github.com/dmitrijs2005/reflect/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "reflect:", err)
		os.Exit(1)
	}
}

func run() error {
	buildinfo.Print(os.Stdout)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := cli.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error(ctx, "failed to close storage", "err", err)
		}
	}()

	log.Debug(ctx, "storage opened", "storage", cfg.Storage, "dsn", cfg.DSN)

	return cli.NewApp(store, cfg, log, os.Stdin, os.Stdout).Run(ctx)
}
