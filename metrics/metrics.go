package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/maxpoletaev/pgfanout/nodeclient"
	"github.com/maxpoletaev/pgfanout/nodes"
	"github.com/maxpoletaev/pgfanout/replication"
)

const namespace = "pgfanout"

// Collector counts the outcomes of propagations and per-node reads. It is
// used as the replication sink and registered with a prometheus registry.
type Collector struct {
	propagations        prometheus.Counter
	propagationDuration prometheus.Histogram
	secondaryWrites     *prometheus.CounterVec
	nodeFailures        *prometheus.CounterVec
	requests            *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
}

var _ replication.Sink = (*Collector)(nil)

func New() *Collector {
	return &Collector{
		propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "propagations_total",
			Help:      "Number of finished propagations to the secondary nodes.",
		}),
		propagationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "propagation_duration_seconds",
			Help:      "Time spent copying an item to all secondary nodes.",
			Buckets:   prometheus.DefBuckets,
		}),
		secondaryWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secondary_writes_total",
			Help:      "Number of item copies per secondary node and result.",
		}, []string{"node", "result"}),
		nodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "node_failures_total",
			Help:      "Number of failed node reads per operation, node and error kind.",
		}, []string{"op", "node", "kind"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests per route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests per route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.propagations.Describe(ch)
	c.propagationDuration.Describe(ch)
	c.secondaryWrites.Describe(ch)
	c.nodeFailures.Describe(ch)
	c.requests.Describe(ch)
	c.requestDuration.Describe(ch)
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.propagations.Collect(ch)
	c.propagationDuration.Collect(ch)
	c.secondaryWrites.Collect(ch)
	c.nodeFailures.Collect(ch)
	c.requests.Collect(ch)
	c.requestDuration.Collect(ch)
}

func (c *Collector) PropagationFinished(report replication.Report) {
	c.propagations.Inc()
	c.propagationDuration.Observe(report.Duration.Seconds())

	for _, o := range report.Outcomes {
		c.secondaryWrites.WithLabelValues(string(o.Node), kindLabel(o.Kind)).Inc()
	}
}

func (c *Collector) NodeFailed(op string, id nodes.NodeID, kind error) {
	c.nodeFailures.WithLabelValues(op, string(id), kindLabel(kind)).Inc()
}

func kindLabel(kind error) string {
	switch {
	case kind == nil:
		return "ok"
	case errors.Is(kind, nodeclient.ErrUnreachable):
		return "unreachable"
	case errors.Is(kind, nodeclient.ErrStatementFailed):
		return "statement_failed"
	default:
		return "other"
	}
}
