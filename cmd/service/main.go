package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pdfdock/pdfdock/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run wires the service and blocks until an interrupt or SIGTERM arrives,
// then drains it within the configured shutdown timeout.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("finalize config: %w", err)
	}

	svc, err := NewService(cfg)
	if err != nil {
		return fmt.Errorf("init service: %w", err)
	}

	if err := svc.Start(); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()

	if err := svc.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
