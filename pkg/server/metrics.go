package server

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var ensureMetricRegisteringOnce sync.Once
var sizeHist *prometheus.HistogramVec
var errorCounter *prometheus.CounterVec

func initializeMetrics(metricRegistry *prometheus.Registry) {
	ensureMetricRegisteringOnce.Do(func() {

		sizeHist = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:      "request_body_size_bytes",
				Subsystem: "http",
				Namespace: "skycodec",
				Help:      "The size in bytes of (received) uploaded file content",
				Buckets:   []float64{0, 1024, 524288, 1048576, 2621440, 5242880, 10485760},
				// 0, 1KB, 512KB, 1MB, 2.5MB, 5MB, 10MB
			},
			[]string{"path"},
		)

		errorCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "request_errors_total",
				Subsystem: "http",
				Namespace: "skycodec",
				Help:      "Count of requests rejected or failed, partitioned by reason",
			},
			[]string{"reason", "path"},
		)

		metricRegistry.MustRegister(sizeHist, errorCounter)
	})
}

func observeSize(path string, size float64) {
	sizeHist.WithLabelValues(path).Observe(size)
}

func increaseErrorCount(reason string, path string) {
	errorCounter.WithLabelValues(reason, path).Inc()
}
