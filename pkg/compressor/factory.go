package compressor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/domain"
)

// Writer compresses everything written into it. Close must be called to
// finish the stream.
type Writer interface {
	io.WriteCloser
	Flush() error
}

func NewReader(conf *config.CompressionConfig, reader io.Reader) (io.ReadCloser, error) {
	var compressor io.ReadCloser
	var err error

	switch strings.ToLower(conf.Type) {
	case domain.CompressionGzipType:
		compressor, err = gzip.NewReader(reader)
	case domain.CompressionZlibType:
		compressor, err = zlib.NewReader(reader)
	case domain.CompressionDeflateType:
		compressor = flate.NewReader(reader)
	case domain.CompressionSnappyType:
		compressor = io.NopCloser(snappy.NewReader(reader))
	case domain.CompressionZstdType:
		var decoder *zstd.Decoder
		decoder, err = zstd.NewReader(reader)
		if err == nil {
			compressor = decoder.IOReadCloser()
		}
	case "":
		compressor = NewNoopCompressorReader(reader)
	default:
		compressor = nil
		err = fmt.Errorf("invalid compression type %s", conf.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("error creating %s reader: %w", conf.Type, err)
	}

	return compressor, nil
}

func NewWriter(conf *config.CompressionConfig, writer io.Writer) (Writer, error) {
	var compressor Writer
	var err error

	levelSet := conf.Level != ""
	level := 0
	if levelSet {
		level, err = strconv.Atoi(conf.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid compression level %s: %w", conf.Level, err)
		}
	}

	switch strings.ToLower(conf.Type) {
	case domain.CompressionGzipType:
		if levelSet {
			compressor, err = gzip.NewWriterLevel(writer, level)
		} else {
			compressor = gzip.NewWriter(writer)
		}
	case domain.CompressionZlibType:
		if levelSet {
			compressor, err = zlib.NewWriterLevel(writer, level)
		} else {
			compressor = zlib.NewWriter(writer)
		}
	case domain.CompressionDeflateType:
		if levelSet {
			compressor, err = flate.NewWriter(writer, level)
		} else {
			compressor, err = flate.NewWriter(writer, flate.DefaultCompression)
		}
	case domain.CompressionSnappyType:
		compressor = snappy.NewBufferedWriter(writer)
	case domain.CompressionZstdType:
		if levelSet {
			compressor, err = zstd.NewWriter(writer,
				zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
		} else {
			compressor, err = zstd.NewWriter(writer)
		}
	case "":
		compressor = NewNoopCompressorWriter(writer)
	default:
		compressor = nil
		err = fmt.Errorf("invalid compression type %s", conf.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("error creating %s writer: %w", conf.Type, err)
	}

	return compressor, nil
}
