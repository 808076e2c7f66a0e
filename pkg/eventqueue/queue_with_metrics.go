package eventqueue

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skycodec/skycodec/pkg/domain"
)

const queueTypeLabel string = "event_queue_type"

var (
	ensureMetricRegisteringOnce sync.Once
	enqueueLatencyHistogram     *prometheus.HistogramVec
	enqueueCounter              *prometheus.CounterVec
	enqueueErrorCounter         *prometheus.CounterVec
)

type queueWithMetrics struct {
	queue       EventQueue
	wrappedType string
}

func NewQueueWithMetrics(queue EventQueue, metricRegistry *prometheus.Registry) EventQueue {
	ensureMetricRegisteringOnce.Do(func() {
		enqueueLatencyHistogram = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:      "enqueue_latency_seconds",
				Subsystem: "event_queue",
				Namespace: "skycodec",
				Help:      "the time it took to enqueue a compression event",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
			},
			[]string{queueTypeLabel},
		)

		enqueueCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "enqueue_total",
				Namespace: "skycodec",
				Subsystem: "event_queue",
				Help:      "count of compression events enqueued",
			},
			[]string{queueTypeLabel},
		)

		enqueueErrorCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:      "enqueue_errors_total",
				Namespace: "skycodec",
				Subsystem: "event_queue",
				Help:      "count of errors enqueueing compression events",
			},
			[]string{queueTypeLabel},
		)

		metricRegistry.MustRegister(enqueueLatencyHistogram, enqueueCounter, enqueueErrorCounter)
	})

	return &queueWithMetrics{queue: queue, wrappedType: queue.Type()}
}

func (w *queueWithMetrics) Enqueue(event *domain.CompressionEvent) error {
	startTime := time.Now()
	err := w.queue.Enqueue(event)

	enqueueLatencyHistogram.WithLabelValues(w.wrappedType).Observe(time.Since(startTime).Seconds())
	enqueueCounter.WithLabelValues(w.wrappedType).Inc()
	if err != nil {
		enqueueErrorCounter.WithLabelValues(w.wrappedType).Inc()
	}

	return err
}

func (w *queueWithMetrics) Type() string {
	return w.wrappedType
}
