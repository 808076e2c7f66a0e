package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/filesink"
	"github.com/skycodec/skycodec/pkg/notifier"
	"github.com/skycodec/skycodec/pkg/transfer"
	"github.com/skycodec/skycodec/pkg/workflow"
)

// RunClient drives a single file through the whole workflow: selection,
// concurrent staging + compression, and the final download of the artifact.
func RunClient(conf *config.Config, l *slog.Logger, filePath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricRegistry := prometheus.NewRegistry()

	remoteTransfer, err := transfer.New(conf.Remote, l, metricRegistry)
	if err != nil {
		return fmt.Errorf("error creating transfer: %w", err)
	}

	sink, err := filesink.NewLocalSink(conf.Workflow.DownloadDir)
	if err != nil {
		return fmt.Errorf("error creating file sink: %w", err)
	}

	wf, err := workflow.New(
		conf.Workflow, l, remoteTransfer, notifier.NewLogNotifier(l), sink, metricRegistry)
	if err != nil {
		return fmt.Errorf("error creating workflow: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading input file: %w", err)
	}

	err = wf.SelectFile(ctx, filepath.Base(filePath), data)
	if err != nil {
		return fmt.Errorf("file was rejected: %w", err)
	}

	select {
	case <-wf.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	status := wf.Status()
	if status.Result == nil {
		return errors.New("compression did not produce a result")
	}

	return wf.Download(ctx)
}
