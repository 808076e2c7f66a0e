package workflow

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metricCollector struct {
	stageGauge       prometheus.Gauge
	selectedCounter  prometheus.Counter
	rejectedCounter  prometheus.Counter
	compressCounter  *prometheus.CounterVec
	downloadCounter  *prometheus.CounterVec
	compressionRatio prometheus.Histogram
}

func newMetricCollector(metricRegistry *prometheus.Registry) *metricCollector {
	stageGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "skycodec",
		Subsystem: "workflow",
		Name:      "current_stage",
		Help:      "The ordinal of the pipeline stage currently shown to the user (0 means not started).",
	})

	selectedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "skycodec",
		Subsystem: "workflow",
		Name:      "files_selected_total",
		Help:      "How many files were accepted for processing.",
	})

	rejectedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "skycodec",
		Subsystem: "workflow",
		Name:      "files_rejected_total",
		Help:      "How many candidate files were rejected by validation.",
	})

	compressCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skycodec",
		Subsystem: "workflow",
		Name:      "compress_calls_total",
		Help:      "Outcome of remote compress calls.",
	}, []string{"result"})

	downloadCounter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skycodec",
		Subsystem: "workflow",
		Name:      "download_calls_total",
		Help:      "Outcome of remote download calls.",
	}, []string{"result"})

	compressionRatio := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "skycodec",
		Subsystem: "workflow",
		Name:      "compression_ratio",
		Help:      "The compression ratio (compressed/original) reported by the remote service.",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	})

	metricRegistry.MustRegister(
		stageGauge, selectedCounter, rejectedCounter, compressCounter, downloadCounter, compressionRatio)

	return &metricCollector{
		stageGauge:       stageGauge,
		selectedCounter:  selectedCounter,
		rejectedCounter:  rejectedCounter,
		compressCounter:  compressCounter,
		downloadCounter:  downloadCounter,
		compressionRatio: compressionRatio,
	}
}

func (m *metricCollector) setStage(ordinal int) {
	m.stageGauge.Set(float64(ordinal))
}

func (m *metricCollector) incFileSelected() {
	m.selectedCounter.Inc()
}

func (m *metricCollector) incFileRejected() {
	m.rejectedCounter.Inc()
}

func (m *metricCollector) incCompress(result string) {
	m.compressCounter.WithLabelValues(result).Inc()
}

func (m *metricCollector) incDownload(result string) {
	m.downloadCounter.WithLabelValues(result).Inc()
}

func (m *metricCollector) observeRatio(ratio float64) {
	m.compressionRatio.Observe(ratio)
}
