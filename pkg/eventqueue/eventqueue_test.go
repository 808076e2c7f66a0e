package eventqueue_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/domain"
	"github.com/skycodec/skycodec/pkg/eventqueue"
	"github.com/skycodec/skycodec/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var llog = logger.NewDummy()

func TestFactoryCreatesANoopQueueByDefault(t *testing.T) {
	queue, err := eventqueue.New(llog, prometheus.NewRegistry(), &config.EventQueueConfig{})
	require.NoError(t, err, "an empty type should fall back to the noop queue")
	assert.Equal(t, "noop", queue.Type(), "the created queue should be a noop")

	err = queue.Enqueue(&domain.CompressionEvent{FileID: "abc"})
	assert.NoError(t, err, "the noop queue should accept events silently")
}

func TestFactoryRejectsUnknownTypes(t *testing.T) {
	conf := &config.EventQueueConfig{Type: "kafka"}

	_, err := eventqueue.New(llog, prometheus.NewRegistry(), conf)
	assert.Error(t, err, "an unknown event queue type should be rejected")
}
