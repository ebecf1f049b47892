package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tour-server/config"
	"tour-server/di"
	"tour-server/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tour-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer container.Close()

	container.StatsRefresherService.StartPeriodicJob(ctx, cfg.Cache.StatsRefreshInterval)

	return container.TourHttpServer.Start(ctx)
}
