package domain

import (
	"errors"
	"fmt"
)

// MaxFileSizeInBytes is the default upload limit (10 MiB).
const MaxFileSizeInBytes int64 = 10 * 1024 * 1024

const (
	CompressionGzipType    = "gzip"
	CompressionZlibType    = "zlib"
	CompressionDeflateType = "deflate"
	CompressionSnappyType  = "snappy"
	CompressionZstdType    = "zstd"
)

// ErrFileTooLarge is returned when a candidate file exceeds the upload limit.
var ErrFileTooLarge = errors.New("file size exceeds the allowed limit")

// TransferError wraps any failure of a remote compress or download call.
// Network errors, non-2xx responses and timeouts are all folded into it,
// since the user-facing handling is the same for all of them.
type TransferError struct {
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer %s failed: %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// SelectedFile is the user-chosen input. It is replaced wholesale on a new
// selection and never mutated in place.
type SelectedFile struct {
	Name string
	Size int64
	Data []byte
}

// CompressionEvent announces a finished server-side compression to
// interested consumers.
type CompressionEvent struct {
	SchemaVersion   string  `json:"schema_version"`
	FileID          string  `json:"file_id"`
	OriginalName    string  `json:"original_name"`
	OriginalSize    int64   `json:"original_size"`
	CompressedSize  int64   `json:"compressed_size"`
	CompressionType string  `json:"compression_algorithm,omitempty"`
	Ratio           float64 `json:"compression_ratio"`
	CompressedAt    int64   `json:"compressed_at"`
}

// EventSchemaVersion is the version of the CompressionEvent payload.
const EventSchemaVersion string = "0.0.1"

// CompressionResult is the remote service's response for a successful
// compress call. Immutable once created.
type CompressionResult struct {
	FileID           string  `json:"file_id"`
	OriginalName     string  `json:"original_name"`
	OriginalSize     int64   `json:"original_size"`
	CompressedSize   int64   `json:"compressed_size"`
	CompressionRatio float64 `json:"compression_ratio"`
	Message          string  `json:"message,omitempty"`
}
