package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector records request and classification metrics.
type MetricsCollector struct {
	enabled     bool
	serviceName string

	requestCounter        *prometheus.CounterVec
	requestDuration       *prometheus.HistogramVec
	classificationCounter *prometheus.CounterVec
}

// NewMetricsCollector creates a collector registered against reg. A nil
// reg uses the default Prometheus registerer. When disabled, all record
// methods are no-ops.
func NewMetricsCollector(serviceName string, enabled bool, reg prometheus.Registerer) *MetricsCollector {
	if !enabled {
		return &MetricsCollector{enabled: false, serviceName: serviceName}
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &MetricsCollector{
		enabled:     true,
		serviceName: serviceName,
		requestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errorhandler_requests_total",
				Help: "Total number of HTTP requests made by the client",
			},
			[]string{"method", "endpoint", "result", "service"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "errorhandler_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "service"},
		),
		classificationCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "errorhandler_classifications_total",
				Help: "Classified failure outcomes by status category",
			},
			[]string{"status", "service"},
		),
	}
}

// RecordRequest counts one request and its duration.
func (m *MetricsCollector) RecordRequest(method, endpoint, result string, duration time.Duration) {
	if !m.enabled {
		return
	}
	m.requestCounter.WithLabelValues(method, endpoint, result, m.serviceName).Inc()
	m.requestDuration.WithLabelValues(method, endpoint, m.serviceName).Observe(duration.Seconds())
}

// RecordClassification counts one classified outcome by category name.
func (m *MetricsCollector) RecordClassification(status string) {
	if !m.enabled {
		return
	}
	m.classificationCounter.WithLabelValues(status, m.serviceName).Inc()
}
