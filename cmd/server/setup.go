package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/maxpoletaev/pgfanout/api"
	"github.com/maxpoletaev/pgfanout/metrics"
	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodeclient/inmemory"
	"github.com/maxpoletaev/pgfanout/nodeclient/postgres"
	"github.com/maxpoletaev/pgfanout/nodes"
	"github.com/maxpoletaev/pgfanout/replication"
	"github.com/maxpoletaev/pgfanout/schema"
)

const defaultPrimary nodes.NodeID = "node1"

type shutdownFunc func(ctx context.Context) error

var noopShutdown = func(ctx context.Context) error { return nil }

func setupLogger() (kitlog.Logger, shutdownFunc) {
	var logger kitlog.Logger

	if opts.LogJSON {
		logger = kitlog.NewJSONLogger(kitlog.NewSyncWriter(os.Stderr))
	} else {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	}

	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC)

	if !opts.Verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	return logger, noopShutdown
}

func setupRegistry() (*nodes.Registry, error) {
	primary := nodes.NodeID(opts.Nodes.Primary)

	if opts.Nodes.File != "" {
		return nodes.LoadFile(opts.Nodes.File, primary)
	}

	if primary == "" {
		primary = defaultPrimary
	}

	list, err := nodes.ParseAll(opts.Nodes.Defs)
	if err != nil {
		return nil, err
	}

	if len(list) == 0 {
		list = []nodes.Node{
			{ID: "node1", Endpoint: nodes.Endpoint{DSN: opts.Nodes.Node1URL}},
			{ID: "node2", Endpoint: nodes.Endpoint{DSN: opts.Nodes.Node2URL}},
			{ID: "node3", Endpoint: nodes.Endpoint{DSN: opts.Nodes.Node3URL}},
		}
	}

	return nodes.New(primary, list...)
}

func setupConnManager(registry *nodes.Registry, logger kitlog.Logger) *nodeclient.ConnManager {
	var dialer nodeclient.Dialer = postgres.NewDialer()

	if opts.Nodes.InMemory {
		level.Info(logger).Log("msg", "using in-memory nodes")
		dialer = inmemory.NewDialer()
	}

	return nodeclient.NewConnManager(registry, dialer, logger,
		nodeclient.WithConnectTimeout(millis(opts.Nodes.ConnectTimeout)),
		nodeclient.WithStatementTimeout(millis(opts.Nodes.StatementTimeout)),
	)
}

func setupMetrics() (*metrics.Collector, *prometheus.Registry, error) {
	collector := metrics.New()
	reg := prometheus.NewRegistry()

	for _, c := range []prometheus.Collector{
		collector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	return collector, reg, nil
}

func bootstrapNodes(ctx context.Context, conns *nodeclient.ConnManager, logger kitlog.Logger) {
	if opts.Nodes.SkipBootstrap {
		return
	}

	if err := schema.Bootstrap(ctx, conns, logger); err != nil {
		level.Warn(logger).Log("msg", "some nodes were not prepared", "err", err)
	}
}

func setupPropagator(conns *nodeclient.ConnManager, sink replication.Sink, logger kitlog.Logger) (*replication.Propagator, shutdownFunc, error) {
	mode, err := replication.ParseMode(opts.Propagation.Mode)
	if err != nil {
		return nil, nil, err
	}

	propagator := replication.NewPropagator(conns, logger, sink, replication.Config{
		Mode:               mode,
		PropagationTimeout: millis(opts.Propagation.Timeout),
		MaxConcurrency:     opts.Propagation.MaxConcurrency,
	})

	shutdown := func(ctx context.Context) error {
		level.Info(logger).Log("msg", "waiting for running propagations")

		if err := propagator.Close(ctx); err != nil {
			return fmt.Errorf("failed to finish propagations: %w", err)
		}

		return nil
	}

	return propagator, shutdown, nil
}

func setupAPIServer(wg *sync.WaitGroup, h http.Handler, logger kitlog.Logger) (*http.Server, shutdownFunc) {
	addr := net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port))

	server := &http.Server{
		Addr:    addr,
		Handler: h,
	}

	wg.Add(1)

	go func() {
		defer wg.Done()

		level.Info(logger).Log("msg", "starting http server", "addr", addr)

		if err := server.ListenAndServe(); err != nil {
			if err != http.ErrServerClosed {
				panic(fmt.Sprintf("failed to start http server: %v", err))
			}
		}
	}()

	shutdown := func(ctx context.Context) error {
		level.Info(logger).Log("msg", "shutting down http server")

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown http server: %w", err)
		}

		return nil
	}

	return server, shutdown
}

func createRouter(conns *nodeclient.ConnManager, propagator *replication.Propagator, collector *metrics.Collector, reg *prometheus.Registry, logger kitlog.Logger) http.Handler {
	return api.CreateRouter(api.Services{
		Registry: conns.Registry(),
		Writer:   propagator,
		Lister:   replication.NewLister(conns, logger, collector),
		Searcher: replication.NewSearcher(conns, logger, collector, opts.Propagation.MaxConcurrency),
		Metrics:  collector,
		Gatherer: reg,
	}, logger)
}
