package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-kit/log/level"
	"github.com/jessevdk/go-flags"
)

const shutdownTimeout = 30 * time.Second

func main() {
	p := flags.NewParser(&opts, flags.Default)

	if _, err := p.Parse(); err != nil {
		if err.(*flags.Error).Type != flags.ErrHelp {
			fmt.Println("cli error:", err)
		}

		os.Exit(2)
	}

	wg := sync.WaitGroup{}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger, closeLogger := setupLogger()

	registry, err := setupRegistry()
	if err != nil {
		level.Error(logger).Log("msg", "invalid node configuration", "err", err)
		os.Exit(1)
	}

	level.Info(logger).Log("msg", "loaded nodes", "nodes", fmt.Sprint(registry.IDs()), "primary", registry.Primary())

	conns := setupConnManager(registry, logger)

	collector, reg, err := setupMetrics()
	if err != nil {
		level.Error(logger).Log("msg", "failed to setup metrics", "err", err)
		os.Exit(1)
	}

	propagator, closePropagator, err := setupPropagator(conns, collector, logger)
	if err != nil {
		level.Error(logger).Log("msg", "invalid propagation settings", "err", err)
		os.Exit(1)
	}

	bootstrapNodes(context.Background(), conns, logger)

	_, closeAPIServer := setupAPIServer(&wg, createRouter(conns, propagator, collector, reg, logger), logger)

	// The server stops accepting writes before the propagator is drained.
	shutdownOrder := []shutdownFunc{
		closeAPIServer,
		closePropagator,
		closeLogger,
	}

	<-interrupt
	level.Info(logger).Log("msg", "received interrupt signal, shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, f := range shutdownOrder {
		if err := f(ctx); err != nil {
			level.Error(logger).Log("msg", "failed to shutdown component", "err", err)
		}
	}

	wg.Wait()
}
