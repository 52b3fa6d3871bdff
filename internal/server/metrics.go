package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for one server. Each server owns
// a private registry so tests can build several side by side.
type Metrics struct {
	registry     *prometheus.Registry
	Requests     *prometheus.CounterVec
	Replacements prometheus.Counter
	Steps        prometheus.Histogram
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "growthlab_requests_total",
				Help: "HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		Replacements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "growthlab_replacements_total",
			Help: "Successful parameter replacements",
		}),
		Steps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "growthlab_simulation_steps",
			Help:    "Path length of served simulations",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	m.registry.MustRegister(m.Requests, m.Replacements, m.Steps)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
