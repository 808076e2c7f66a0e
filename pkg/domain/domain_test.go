package domain_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/skycodec/skycodec/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageTableIsFixed(t *testing.T) {
	stages := domain.Stages()

	assert.Len(t, stages, domain.StageCount, "there should be exactly five stages")
	for i, stage := range stages {
		assert.Equal(t, i+1, stage.Ordinal, "stage ordinals should be 1..5 in order")
		assert.NotEmpty(t, stage.Title, "every stage should have a title")
		assert.NotEmpty(t, stage.Description, "every stage should have a description")
	}
}

func TestTransferErrorWrapsTheCause(t *testing.T) {
	cause := errors.New("connection refused")
	sut := &domain.TransferError{Op: "compress", Err: cause}

	assert.ErrorIs(t, sut, cause, "the cause should be reachable through errors.Is")
	assert.Contains(t, sut.Error(), "compress", "the message should name the failed operation")
}

func TestCompressionResultJSONFieldNames(t *testing.T) {
	payload := []byte(`{
		"file_id": "abc",
		"original_name": "a.txt",
		"original_size": 5242880,
		"compressed_size": 1048576,
		"compression_ratio": 0.2,
		"message": "File compressed successfully"
	}`)

	result := domain.CompressionResult{}
	require.NoError(t, json.Unmarshal(payload, &result), "the wire payload should parse")

	assert.Equal(t, "abc", result.FileID, "file_id should map onto FileID")
	assert.Equal(t, "a.txt", result.OriginalName, "original_name should map onto OriginalName")
	assert.Equal(t, int64(5242880), result.OriginalSize, "original_size should map onto OriginalSize")
	assert.Equal(t, int64(1048576), result.CompressedSize, "compressed_size should map onto CompressedSize")
	assert.Equal(t, 0.2, result.CompressionRatio, "compression_ratio should map onto CompressionRatio")
}
