package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/ros/backend/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment.
	pflag.StringVarP(&cfg.Server.Port, "port", "p", cfg.Server.Port, "HTTP port")
	pflag.StringVar(&cfg.Server.Host, "host", cfg.Server.Host, "listen address")
	pflag.StringVar(&cfg.Storage.Backend, "storage", cfg.Storage.Backend, "storage backend: file, memory, postgres or s3")
	pflag.StringVar(&cfg.Storage.Path, "storage-path", cfg.Storage.Path, "directory for the file backend")
	pflag.BoolVar(&cfg.Logging.Development, "dev", cfg.Logging.Development, "colored debug logging")
	pflag.Parse()
	if cfg.Logging.Development {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.NewServer(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create server: %v\n", err)
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	select {
	case err = <-errCh:
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = srv.Shutdown(shutdownCtx)
		cancel()
	}

	if closeErr := srv.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}
