package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/skycodec/skycodec/pkg/compressor"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/domain"
	"github.com/skycodec/skycodec/pkg/eventqueue"
	"github.com/skycodec/skycodec/pkg/logger"
	"github.com/skycodec/skycodec/pkg/storage"
)

// ErrRecordNotFound is returned when no compression record exists for an id.
var ErrRecordNotFound = errors.New("no compression record for the given file id")

const successMessage = "File compressed successfully"

// CompressionRecord is the server-side bookkeeping for one compressed file.
type CompressionRecord struct {
	domain.CompressionResult
	ArtifactKey string
	CreatedAt   time.Time
}

// StatusCheck is a client-announced liveness record.
type StatusCheck struct {
	ID         string    `json:"id"`
	ClientName string    `json:"client_name"`
	Timestamp  time.Time `json:"timestamp"`
}

// CompressionService compresses uploaded payloads, persists the artifacts
// and keeps the records the download endpoint serves from.
type CompressionService struct {
	log                 *slog.Logger
	compressionConf     config.CompressionConfig
	store               storage.ArtifactStore
	queue               eventqueue.EventQueue
	currentTimeProvider func() time.Time

	mu           sync.RWMutex
	records      map[string]CompressionRecord
	statusChecks []StatusCheck
}

func NewCompressionService(
	l *slog.Logger,
	compressionConf config.CompressionConfig,
	store storage.ArtifactStore,
	queue eventqueue.EventQueue,
	currentTimeProvider func() time.Time,
) *CompressionService {
	return &CompressionService{
		log:                 l.With(logger.ComponentKey, "compression_service"),
		compressionConf:     compressionConf,
		store:               store,
		queue:               queue,
		currentTimeProvider: currentTimeProvider,
		records:             make(map[string]CompressionRecord),
	}
}

// Compress encodes the content with the configured codec, stores the
// artifact and returns the result the client consumes.
func (svc *CompressionService) Compress(filename string, content []byte) (*domain.CompressionResult, error) {
	compressedData, err := svc.compress(content)
	if err != nil {
		return nil, fmt.Errorf("error compressing data: %w", err)
	}

	fileID := uuid.NewString()
	artifactKey := fmt.Sprintf("%s_compressed_%s", fileID, filename)

	err = svc.store.Save(artifactKey, compressedData)
	if err != nil {
		return nil, fmt.Errorf("error storing artifact: %w", err)
	}

	originalSize := int64(len(content))
	compressedSize := int64(len(compressedData))

	result := &domain.CompressionResult{
		FileID:           fileID,
		OriginalName:     filename,
		OriginalSize:     originalSize,
		CompressedSize:   compressedSize,
		CompressionRatio: float64(compressedSize) / float64(originalSize),
		Message:          successMessage,
	}

	record := CompressionRecord{
		CompressionResult: *result,
		ArtifactKey:       artifactKey,
		CreatedAt:         svc.currentTimeProvider(),
	}

	svc.mu.Lock()
	svc.records[fileID] = record
	svc.mu.Unlock()

	svc.publishEvent(record)

	return result, nil
}

// OpenArtifact returns the record and the compressed bytes for a file id.
func (svc *CompressionService) OpenArtifact(fileID string) (*CompressionRecord, []byte, error) {
	svc.mu.RLock()
	record, found := svc.records[fileID]
	svc.mu.RUnlock()

	if !found {
		return nil, nil, ErrRecordNotFound
	}

	data, err := svc.store.Open(record.ArtifactKey)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening artifact: %w", err)
	}

	return &record, data, nil
}

func (svc *CompressionService) CreateStatusCheck(clientName string) StatusCheck {
	check := StatusCheck{
		ID:         uuid.NewString(),
		ClientName: clientName,
		Timestamp:  svc.currentTimeProvider(),
	}

	svc.mu.Lock()
	svc.statusChecks = append(svc.statusChecks, check)
	svc.mu.Unlock()

	return check
}

func (svc *CompressionService) ListStatusChecks() []StatusCheck {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	checks := make([]StatusCheck, len(svc.statusChecks))
	copy(checks, svc.statusChecks)
	return checks
}

func (svc *CompressionService) compress(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	compressWorker, err := compressor.NewWriter(&svc.compressionConf, buf)
	if err != nil {
		return nil, fmt.Errorf("error creating compressor: %w", err)
	}

	_, err = compressWorker.Write(data)
	if err != nil {
		return nil, fmt.Errorf("error writing compressed data into memory buffer: %w", err)
	}

	err = compressWorker.Flush()
	if err != nil {
		return nil, fmt.Errorf("error flushing compressed data into memory buffer: %w", err)
	}

	err = compressWorker.Close()
	if err != nil {
		return nil, fmt.Errorf("error finishing the compressed data stream: %w", err)
	}

	return buf.Bytes(), nil
}

// publishEvent failures are logged only. The compression already succeeded
// and the client response must not depend on downstream consumers.
func (svc *CompressionService) publishEvent(record CompressionRecord) {
	event := &domain.CompressionEvent{
		FileID:          record.FileID,
		OriginalName:    record.OriginalName,
		OriginalSize:    record.OriginalSize,
		CompressedSize:  record.CompressedSize,
		CompressionType: svc.compressionConf.Type,
		Ratio:           record.CompressionRatio,
		CompressedAt:    record.CreatedAt.Unix(),
	}

	err := svc.queue.Enqueue(event)
	if err != nil {
		svc.log.Error("failed to enqueue compression event", "file_id", record.FileID, "error", err)
	} else {
		svc.log.Debug("finished enqueueing compression event", "file_id", record.FileID)
	}
}
