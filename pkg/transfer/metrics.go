package transfer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type metricCollector struct {
	requestCounter *prometheus.CounterVec
	latencyHist    *prometheus.HistogramVec
}

func newMetricCollector(metricRegistry *prometheus.Registry) *metricCollector {
	requestCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skycodec",
		Subsystem: "transfer",
		Name:      "requests_total",
		Help:      "How many remote calls were made, partitioned by operation and result.",
	}, []string{"operation", "result"})

	latencyHist := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skycodec",
		Subsystem: "transfer",
		Name:      "request_duration_seconds",
		Help:      "Latency of remote calls, in seconds.",
		Buckets:   []float64{0.1, 0.2, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0},
	}, []string{"operation"})

	metricRegistry.MustRegister(requestCounter, latencyHist)

	return &metricCollector{
		requestCounter: requestCounter,
		latencyHist:    latencyHist,
	}
}

func (m *metricCollector) incRequest(operation string, result string) {
	m.requestCounter.WithLabelValues(operation, result).Inc()
}

func (m *metricCollector) observeDuration(operation string, d time.Duration) {
	m.latencyHist.WithLabelValues(operation).Observe(d.Seconds())
}
