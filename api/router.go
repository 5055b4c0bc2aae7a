package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	kitlog "github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maxpoletaev/pgfanout/api/handler"
	"github.com/maxpoletaev/pgfanout/metrics"
	"github.com/maxpoletaev/pgfanout/nodes"
)

type Services struct {
	Registry *nodes.Registry
	Writer   handler.ItemWriter
	Lister   handler.ItemLister
	Searcher handler.ItemSearcher

	// Metrics and Gatherer are optional. Without a gatherer there is no
	// /metrics endpoint.
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
}

func CreateRouter(s Services, logger kitlog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(allowCORS)

	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware)
	}

	handler.NewItemsHandler(s.Writer, s.Lister, s.Searcher, s.Registry, logger).Register(r)
	handler.NewNodesHandler(s.Registry).Register(r)

	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
