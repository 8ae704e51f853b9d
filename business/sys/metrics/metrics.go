// Package metrics constructs the metrics the application will track and
// exposes them for prometheus to scrape.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledger"

// Set of outcomes recorded for a mining request.
const (
	MineSolved    = "solved"
	MineExhausted = "exhausted"
	MineCancelled = "cancelled"
)

// Metrics holds the set of collectors for the ledger service. The methods
// are safe to call on a nil value so packages can treat metrics as optional.
type Metrics struct {
	registry *prometheus.Registry
	requests prometheus.Counter
	errors   prometheus.Counter
	panics   prometheus.Counter
	pushes   *prometheus.CounterVec
	mines    *prometheus.CounterVec
}

// New constructs the metrics with their own registry.
func New() *Metrics {
	m := Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests handled.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_errors_total",
			Help:      "Number of HTTP requests that returned an error.",
		}),
		panics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_panics_total",
			Help:      "Number of HTTP requests that panicked.",
		}),
		pushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "push_total",
			Help:      "Number of push attempts by result.",
		}, []string{"result"}),
		mines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mine_total",
			Help:      "Number of mining requests by outcome.",
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.errors,
		m.panics,
		m.pushes,
		m.mines,
	)

	return &m
}

// TrackBlocks registers a gauge reporting the number of blocks in the chain.
func (m *Metrics) TrackBlocks(blocks func() int) {
	if m == nil {
		return
	}

	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "blocks",
		Help:      "Number of blocks in the chain.",
	}, func() float64 {
		return float64(blocks())
	}))
}

// Handler returns the http handler prometheus scrapes.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}

	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Request increments the request counter.
func (m *Metrics) Request() {
	if m != nil {
		m.requests.Inc()
	}
}

// Error increments the error counter.
func (m *Metrics) Error() {
	if m != nil {
		m.errors.Inc()
	}
}

// Panic increments the panic counter.
func (m *Metrics) Panic() {
	if m != nil {
		m.panics.Inc()
	}
}

// Push records the result of a push attempt.
func (m *Metrics) Push(accepted bool) {
	if m == nil {
		return
	}

	result := "rejected"
	if accepted {
		result = "accepted"
	}
	m.pushes.WithLabelValues(result).Inc()
}

// Mine records the outcome of a mining request.
func (m *Metrics) Mine(outcome string) {
	if m != nil {
		m.mines.WithLabelValues(outcome).Inc()
	}
}
