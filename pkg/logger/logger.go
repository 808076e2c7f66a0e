package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/skycodec/skycodec/pkg/config"
)

const ComponentKey = "component"
const StorageTypeKey = "storage_type"
const EventQueueTypeKey = "event_queue_type"

// New builds the app-wide structured logger from config. It panics on
// invalid config because nothing can run without logging.
func New(conf config.LogConfig) *slog.Logger {
	var level slog.Level
	err := level.UnmarshalText([]byte(conf.Level))
	if err != nil {
		panic("error initializing logger: " + err.Error())
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if conf.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

// NewDummy returns a logger that discards everything. Meant for tests.
func NewDummy() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
