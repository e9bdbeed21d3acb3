package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zkgov/ballotbox/config"
	"github.com/zkgov/ballotbox/log"
	"github.com/zkgov/ballotbox/service"
	"github.com/zkgov/ballotbox/storage"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "ballotbox",
		Short:        "Anonymous, auditable governance voting backend",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.Init(cfg.LogLevel, "stdout", nil)

	store, err := storage.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	apiSrv := service.NewAPI(store, cfg.Host, cfg.Port, cfg.JWTSecret)
	if err := apiSrv.Start(ctx); err != nil {
		return fmt.Errorf("start API service: %w", err)
	}
	log.Infow("ballotbox running", "host", cfg.Host, "port", cfg.Port, "db", cfg.DatabasePath)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Infow("shutting down", "signal", sig.String())
	apiSrv.Stop()
	return nil
}
