// Package notifier delivers transient user-facing notifications. Workflow
// errors are surfaced exclusively through it and never escalate further.
package notifier

import (
	"log/slog"

	"github.com/skycodec/skycodec/pkg/logger"
)

type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier renders notifications as log events.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(l *slog.Logger) *LogNotifier {
	return &LogNotifier{log: l.With(logger.ComponentKey, "notifier")}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info(msg, "notification", "success")
}

func (n *LogNotifier) Error(msg string) {
	n.log.Warn(msg, "notification", "error")
}
