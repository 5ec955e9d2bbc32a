package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	VerifyOutcomes  *prometheus.CounterVec
	LookupOutcomes  *prometheus.CounterVec
	ImageProbes     *prometheus.CounterVec
	EndpointLatency *prometheus.HistogramVec
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// outcome: verified | not_verified | <error kind>
		VerifyOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socio_verify_requests_total",
			Help: "Verification submissions by outcome",
		}, []string{"outcome"}),
		LookupOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socio_lookup_requests_total",
			Help: "Verification lookups by outcome",
		}, []string{"outcome"}),
		// outcome: sized | failed | abandoned
		ImageProbes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "socio_image_probes_total",
			Help: "Image dimension probes by outcome",
		}, []string{"outcome"}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "socio_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
	}
}

func (m *Metrics) IncVerify(outcome string) {
	if m == nil || m.VerifyOutcomes == nil {
		return
	}
	m.VerifyOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncLookup(outcome string) {
	if m == nil || m.LookupOutcomes == nil {
		return
	}
	m.LookupOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncImageProbe(outcome string) {
	if m == nil || m.ImageProbes == nil {
		return
	}
	m.ImageProbes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveLatency(route, method, status string, seconds float64) {
	if m == nil || m.EndpointLatency == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(route, method, status).Observe(seconds)
}
