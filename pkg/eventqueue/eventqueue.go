// Package eventqueue publishes compression-completed events to an external
// queue, so other systems can react to new artifacts.
package eventqueue

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/domain"
	"github.com/skycodec/skycodec/pkg/eventqueue/noop"
	"github.com/skycodec/skycodec/pkg/eventqueue/sqs"
	"gopkg.in/yaml.v2"
)

const (
	sqsType  string = "sqs"
	noopType string = "noop"
)

type EventQueue interface {
	Enqueue(event *domain.CompressionEvent) error
	Type() string
}

func New(
	l *slog.Logger, metricRegistry *prometheus.Registry, conf *config.EventQueueConfig,
) (EventQueue, error) {

	var queue EventQueue
	specificConf, err := yaml.Marshal(conf.Config)
	if err != nil {
		return nil, fmt.Errorf("error parsing event queue config: %w", err)
	}

	switch conf.Type {
	case sqsType:
		sqsConf, err := sqs.ParseConfig(specificConf)
		if err != nil {
			return nil, fmt.Errorf("error parsing sqs-specific config: %w", err)
		}

		queue, err = sqs.New(l, sqsConf)
		if err != nil {
			return nil, fmt.Errorf("error creating SQS event queue: %w", err)
		}
	case noopType, "":
		queue = noop.New()
	default:
		return nil, fmt.Errorf("invalid event queue type %s", conf.Type)
	}

	return NewQueueWithMetrics(queue, metricRegistry), nil
}
