package server

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/domain"
	"github.com/skycodec/skycodec/pkg/storage/localstorage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingQueue struct {
	events     []*domain.CompressionEvent
	enqueueErr error
}

func (q *recordingQueue) Enqueue(event *domain.CompressionEvent) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.events = append(q.events, event)
	return nil
}

func (q *recordingQueue) Type() string {
	return "recording"
}

type failingStore struct{}

func (s *failingStore) Save(_ string, _ []byte) error {
	return errors.New("disk on fire")
}

func (s *failingStore) Open(_ string) ([]byte, error) {
	return nil, errors.New("disk on fire")
}

func (s *failingStore) Type() string {
	return "failing"
}

func fixedTime() time.Time {
	return time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
}

func TestServiceCompressStoresARecordAndPublishesAnEvent(t *testing.T) {
	store, err := localstorage.New(llog, &localstorage.Config{Path: t.TempDir()})
	require.NoError(t, err, "localstorage creation should not err")

	queue := &recordingQueue{}
	sut := NewCompressionService(
		llog, config.CompressionConfig{Type: domain.CompressionGzipType}, store, queue, fixedTime)

	content := bytes.Repeat([]byte("some repetitive content "), 100)
	result, err := sut.Compress("a.txt", content)
	require.NoError(t, err, "compress should succeed")

	assert.NotEmpty(t, result.FileID, "the result should get a generated id")
	assert.Equal(t, "a.txt", result.OriginalName, "the result should carry the original name")
	assert.Equal(t, int64(len(content)), result.OriginalSize, "the result should carry the original size")
	assert.InDelta(t, float64(result.CompressedSize)/float64(result.OriginalSize),
		result.CompressionRatio, 0.000001, "the ratio should be compressed size over original size")

	record, data, err := sut.OpenArtifact(result.FileID)
	require.NoError(t, err, "the artifact should be retrievable by id")
	assert.Equal(t, result.FileID, record.FileID, "the record should belong to the compressed file")
	assert.Equal(t, fixedTime(), record.CreatedAt, "the record should be timestamped with the injected clock")
	assert.Equal(t, result.CompressedSize, int64(len(data)), "the artifact size should match the result")

	require.Len(t, queue.events, 1, "one event should be published per compression")
	event := queue.events[0]
	assert.Equal(t, result.FileID, event.FileID, "the event should reference the compressed file")
	assert.Equal(t, domain.CompressionGzipType, event.CompressionType,
		"the event should carry the codec used")
	assert.Equal(t, fixedTime().Unix(), event.CompressedAt, "the event should carry the compression time")
}

func TestServiceCompressSurfacesStorageFailures(t *testing.T) {
	sut := NewCompressionService(
		llog, config.CompressionConfig{Type: domain.CompressionGzipType},
		&failingStore{}, &recordingQueue{}, time.Now)

	_, err := sut.Compress("a.txt", []byte("hello"))
	assert.Error(t, err, "a storage failure should fail the compression")
}

func TestServiceCompressSucceedsEvenWhenEventPublishingFails(t *testing.T) {
	store, err := localstorage.New(llog, &localstorage.Config{Path: t.TempDir()})
	require.NoError(t, err, "localstorage creation should not err")

	queue := &recordingQueue{enqueueErr: errors.New("broker unavailable")}
	sut := NewCompressionService(
		llog, config.CompressionConfig{Type: domain.CompressionGzipType}, store, queue, time.Now)

	result, err := sut.Compress("a.txt", []byte("hello"))
	require.NoError(t, err, "a queue failure must not fail the compression")
	assert.NotEmpty(t, result.FileID, "the result should still be produced")
}

func TestServiceOpenArtifactOfUnknownIDErrs(t *testing.T) {
	store, err := localstorage.New(llog, &localstorage.Config{Path: t.TempDir()})
	require.NoError(t, err, "localstorage creation should not err")

	sut := NewCompressionService(
		llog, config.CompressionConfig{Type: domain.CompressionGzipType},
		store, &recordingQueue{}, time.Now)

	_, _, err = sut.OpenArtifact("never-compressed")
	assert.ErrorIs(t, err, ErrRecordNotFound, "an unknown id should yield the not-found error")
}

func TestServiceStatusChecks(t *testing.T) {
	store, err := localstorage.New(llog, &localstorage.Config{Path: t.TempDir()})
	require.NoError(t, err, "localstorage creation should not err")

	sut := NewCompressionService(
		llog, config.CompressionConfig{Type: domain.CompressionGzipType},
		store, &recordingQueue{}, fixedTime)

	assert.Empty(t, sut.ListStatusChecks(), "no checks should exist initially")

	created := sut.CreateStatusCheck("browser-42")
	assert.NotEmpty(t, created.ID, "the check should get a generated id")
	assert.Equal(t, "browser-42", created.ClientName, "the check should carry the client name")
	assert.Equal(t, fixedTime(), created.Timestamp, "the check should be timestamped")

	checks := sut.ListStatusChecks()
	require.Len(t, checks, 1, "the created check should be listed")
	assert.Equal(t, created, checks[0], "the listed check should be the created one")
}
