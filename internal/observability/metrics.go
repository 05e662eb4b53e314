package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "casa_web"

// Metrics groups the collectors exported at /metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	filterChanges   *prometheus.CounterVec
	selections      prometheus.Counter
	dismissals      *prometheus.CounterVec
	navigations     *prometheus.CounterVec
	enquiries       *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics registers the site collectors on a fresh registry together with
// the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		filterChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_filter_changes_total",
			Help:      "Effective portfolio filter changes by filter value.",
		}, []string{"filter"}),
		selections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_selections_total",
			Help:      "Projects opened in the detail view.",
		}),
		dismissals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_dismissals_total",
			Help:      "Detail view activations by outcome.",
		}, []string{"outcome"}),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_navigations_total",
			Help:      "Navigations away from the detail view by destination.",
		}, []string{"destination"}),
		enquiries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimate_enquiries_total",
			Help:      "Estimate form submissions by result.",
		}, []string{"result"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.filterChanges,
		m.selections,
		m.dismissals,
		m.navigations,
		m.enquiries,
		m.requestDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// FilterChanged counts an effective filter change. Values outside known are
// collapsed into "unknown" to bound label cardinality.
func (m *Metrics) FilterChanged(filter string, known bool) {
	if m == nil {
		return
	}
	if !known {
		filter = "unknown"
	}
	m.filterChanges.WithLabelValues(filter).Inc()
}

// ProjectSelected counts a detail view opening.
func (m *Metrics) ProjectSelected() {
	if m == nil {
		return
	}
	m.selections.Inc()
}

// Dismissed counts a detail view activation; closed reports whether it closed.
func (m *Metrics) Dismissed(closed bool) {
	if m == nil {
		return
	}
	outcome := "contained"
	if closed {
		outcome = "closed"
	}
	m.dismissals.WithLabelValues(outcome).Inc()
}

// NavigatedAway counts a detail view action.
func (m *Metrics) NavigatedAway(destination string) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(destination).Inc()
}

// Enquiry counts an estimate submission; result is "accepted" or "invalid".
func (m *Metrics) Enquiry(result string) {
	if m == nil {
		return
	}
	m.enquiries.WithLabelValues(result).Inc()
}

// ObserveRequest records request latency.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
