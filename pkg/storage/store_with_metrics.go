package storage

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const storageTypeLabel string = "storage_type"
const operationLabel string = "operation"

var (
	ensureMetricRegisteringOnce sync.Once
	latencyHistogram            *prometheus.HistogramVec
	operationCounter            *prometheus.CounterVec
	operationErrorCounter       *prometheus.CounterVec
)

type storeWithMetrics struct {
	store       ArtifactStore
	wrappedType string
}

func NewStoreWithMetrics(store ArtifactStore, metricRegistry *prometheus.Registry) ArtifactStore {
	ensureMetricRegisteringOnce.Do(func() {
		latencyHistogram = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:      "operation_latency_seconds",
				Subsystem: "artifact_store",
				Namespace: "skycodec",
				Help:      "the time it took to finish the artifact store operation",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0, 60.0},
			},
			[]string{storageTypeLabel, operationLabel},
		)

		operationCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "operations_total",
				Namespace: "skycodec",
				Subsystem: "artifact_store",
				Help:      "count of artifact store operations that finished",
			},
			[]string{storageTypeLabel, operationLabel},
		)

		operationErrorCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "operation_errors_total",
				Namespace: "skycodec",
				Subsystem: "artifact_store",
				Help:      "count of errors on artifact store operations",
			},
			[]string{storageTypeLabel, operationLabel},
		)

		metricRegistry.MustRegister(latencyHistogram, operationCounter, operationErrorCounter)
	})

	return &storeWithMetrics{store: store, wrappedType: store.Type()}
}

func (w *storeWithMetrics) Save(key string, data []byte) error {
	startTime := time.Now()
	err := w.store.Save(key, data)
	w.report("save", time.Since(startTime), err)
	return err
}

func (w *storeWithMetrics) Open(key string) ([]byte, error) {
	startTime := time.Now()
	data, err := w.store.Open(key)
	w.report("open", time.Since(startTime), err)
	return data, err
}

func (w *storeWithMetrics) Type() string {
	return w.wrappedType
}

func (w *storeWithMetrics) report(operation string, elapsed time.Duration, err error) {
	latencyHistogram.WithLabelValues(w.wrappedType, operation).Observe(elapsed.Seconds())
	operationCounter.WithLabelValues(w.wrappedType, operation).Inc()
	if err != nil {
		operationErrorCounter.WithLabelValues(w.wrappedType, operation).Inc()
	}
}
