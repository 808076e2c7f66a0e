package noop

import "github.com/skycodec/skycodec/pkg/domain"

const TYPE string = "noop"

type NoopQueue struct{}

func New() *NoopQueue {
	return &NoopQueue{}
}

func (queue *NoopQueue) Enqueue(_ *domain.CompressionEvent) error {
	return nil
}

func (queue *NoopQueue) Type() string {
	return TYPE
}
