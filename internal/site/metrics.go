package site

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for the development server.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	pageViews      *prometheus.CounterVec
	notFoundTotal  prometheus.Counter
	reloadsTotal   prometheus.Counter
	renderDuration prometheus.Histogram
}

// NewMetrics builds a Metrics instance with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		pageViews: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "docsite",
			Name:      "page_views_total",
			Help:      "Pages served, by kind",
		}, []string{"kind"}),
		notFoundTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "docsite",
			Name:      "not_found_total",
			Help:      "Requests that hit the not-found fallback",
		}),
		reloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "docsite",
			Name:      "reloads_total",
			Help:      "Content reloads triggered by the watcher",
		}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "docsite",
			Name:      "render_duration_seconds",
			Help:      "Page render duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Handler serves the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) pageView(kind string) {
	if m != nil {
		m.pageViews.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) notFound() {
	if m != nil {
		m.notFoundTotal.Inc()
	}
}

func (m *Metrics) reload() {
	if m != nil {
		m.reloadsTotal.Inc()
	}
}

func (m *Metrics) observeRender(start time.Time) {
	if m != nil {
		m.renderDuration.Observe(time.Since(start).Seconds())
	}
}
