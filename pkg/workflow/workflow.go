// Package workflow drives a selected file through the processing pipeline:
// a cosmetic stage sequencer and the real remote compress call run
// concurrently, and the user can download the artifact once a result exists.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/domain"
	"github.com/skycodec/skycodec/pkg/filesink"
	"github.com/skycodec/skycodec/pkg/logger"
	"github.com/skycodec/skycodec/pkg/notifier"
	"github.com/skycodec/skycodec/pkg/outputname"
)

// Transferrer performs the remote calls. Implemented by pkg/transfer.
type Transferrer interface {
	Compress(ctx context.Context, file *domain.SelectedFile) (*domain.CompressionResult, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// Status is a point-in-time snapshot of the workflow state.
type Status struct {
	StageOrdinal int
	Processing   bool
	Result       *domain.CompressionResult
}

// Workflow owns the state of one processing run. All mutations happen under
// its mutex, and every run is tagged with a generation so that goroutines
// belonging to a superseded run can never overwrite fresher state.
type Workflow struct {
	log              *slog.Logger
	transfer         Transferrer
	notifier         notifier.Notifier
	sink             filesink.Sink
	metrics          *metricCollector
	maxFileSize      int64
	stageInterval    time.Duration
	outputNamePolicy string

	mu           sync.Mutex
	file         *domain.SelectedFile
	currentStage int
	processing   bool
	result       *domain.CompressionResult
	generation   uint64
	pendingTasks int
	doneChan     chan struct{}
}

func New(
	conf config.WorkflowConfig,
	l *slog.Logger,
	transfer Transferrer,
	notif notifier.Notifier,
	sink filesink.Sink,
	metricRegistry *prometheus.Registry,
) (*Workflow, error) {

	maxFileSize, err := conf.MaxFileSizeInBytes()
	if err != nil {
		return nil, fmt.Errorf("error creating workflow: %w", err)
	}

	return &Workflow{
		log:              l.With(logger.ComponentKey, "workflow"),
		transfer:         transfer,
		notifier:         notif,
		sink:             sink,
		metrics:          newMetricCollector(metricRegistry),
		maxFileSize:      maxFileSize,
		stageInterval:    time.Duration(conf.StageIntervalInMillis) * time.Millisecond,
		outputNamePolicy: conf.OutputNamePolicy,
	}, nil
}

// SelectFile validates the candidate and, on acceptance, discards any prior
// run and starts the stage sequencer and the compress call concurrently.
// Both drag-and-drop and manual browse funnel into this single entrypoint.
func (w *Workflow) SelectFile(ctx context.Context, name string, data []byte) error {
	size := int64(len(data))
	if size > w.maxFileSize {
		w.metrics.incFileRejected()
		w.notifier.Error(fmt.Sprintf("%s exceeds the %d bytes size limit", name, w.maxFileSize))
		return domain.ErrFileTooLarge
	}

	file := &domain.SelectedFile{Name: name, Size: size, Data: data}

	w.mu.Lock()
	w.generation++
	gen := w.generation
	w.file = file
	w.result = nil
	w.currentStage = 0
	w.processing = true
	w.abandonCurrentRun()
	w.doneChan = make(chan struct{})
	w.pendingTasks = 2
	w.mu.Unlock()

	w.metrics.incFileSelected()
	w.metrics.setStage(0)
	w.log.Info("file accepted, starting processing", "filename", name, "size", size)

	go w.runStages(ctx, gen)
	go w.compress(ctx, gen, file)

	return nil
}

// Download fetches the compressed artifact and saves it locally. It is a
// no-op when no result is present. On failure the result is kept, so the
// user may simply retry.
func (w *Workflow) Download(ctx context.Context) error {
	w.mu.Lock()
	result := w.result
	w.mu.Unlock()

	if result == nil {
		return nil
	}

	data, err := w.transfer.Download(ctx, result.FileID)
	if err != nil {
		w.metrics.incDownload("failure")
		w.notifier.Error(fmt.Sprintf("download of %s failed", result.OriginalName))
		w.log.Warn("download failed", "file_id", result.FileID, "error", err)
		return err
	}

	outputName := outputname.Derive(w.outputNamePolicy, result.OriginalName)
	savedPath, err := w.sink.Save(outputName, data)
	if err != nil {
		w.metrics.incDownload("failure")
		w.notifier.Error(fmt.Sprintf("could not save %s", outputName))
		w.log.Warn("saving downloaded artifact failed", "filename", outputName, "error", err)
		return err
	}

	w.metrics.incDownload("success")
	w.notifier.Success(fmt.Sprintf("saved compressed file as %s", savedPath))
	return nil
}

// Reset returns the workflow to the idle state. Idempotent. Any in-flight
// run is abandoned: its goroutines become stale and their results discarded.
func (w *Workflow) Reset() {
	w.mu.Lock()
	w.generation++
	w.file = nil
	w.result = nil
	w.currentStage = 0
	w.processing = false
	w.abandonCurrentRun()
	w.mu.Unlock()

	w.metrics.setStage(0)
}

// Status returns a snapshot of the current state. The result is a copy.
func (w *Workflow) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	var result *domain.CompressionResult
	if w.result != nil {
		resultCopy := *w.result
		result = &resultCopy
	}

	return Status{
		StageOrdinal: w.currentStage,
		Processing:   w.processing,
		Result:       result,
	}
}

// SelectedFileName returns the name of the currently selected file, or ""
// when none is selected.
func (w *Workflow) SelectedFileName() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return ""
	}
	return w.file.Name
}

var alreadyDone = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Done returns a channel that is closed once both concurrent tasks of the
// current run have finished (or the run has been abandoned).
func (w *Workflow) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.doneChan == nil {
		return alreadyDone
	}
	return w.doneChan
}

// runStages advances the cosmetic progress, one ordinal per interval. It is
// wall-clock-driven and deliberately carries no information about the real
// remote call.
func (w *Workflow) runStages(ctx context.Context, gen uint64) {
	defer w.finishTask(gen)

	ticker := time.NewTicker(w.stageInterval)
	defer ticker.Stop()

	for _, stage := range domain.Stages() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !w.advanceStage(gen, stage.Ordinal) {
			return
		}
		w.log.Debug("stage advanced", "ordinal", stage.Ordinal, "title", stage.Title)
	}
}

// advanceStage moves the ordinal forward if the run is still current and has
// not failed. A failed compress forces the ordinal to 0 and the sequencer
// must not resurrect it.
func (w *Workflow) advanceStage(gen uint64, ordinal int) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		return false
	}

	runFailed := !w.processing && w.result == nil
	if runFailed {
		return false
	}

	w.currentStage = ordinal
	w.metrics.setStage(ordinal)
	return true
}

func (w *Workflow) compress(ctx context.Context, gen uint64, file *domain.SelectedFile) {
	defer w.finishTask(gen)

	result, err := w.transfer.Compress(ctx, file)

	w.mu.Lock()
	if gen != w.generation {
		w.mu.Unlock()
		w.log.Debug("discarding compress outcome of a superseded run", "filename", file.Name)
		return
	}

	if err != nil {
		w.processing = false
		w.currentStage = 0
		w.mu.Unlock()

		w.metrics.setStage(0)
		w.metrics.incCompress("failure")
		w.notifier.Error(fmt.Sprintf("compression of %s failed", file.Name))
		w.log.Warn("compress call failed", "filename", file.Name, "error", err)
		return
	}

	w.result = result
	w.processing = false
	w.mu.Unlock()

	w.metrics.incCompress("success")
	w.metrics.observeRatio(result.CompressionRatio)
	w.notifier.Success(fmt.Sprintf("%s compressed, ratio %.2f", result.OriginalName, result.CompressionRatio))
	w.log.Info("compress call succeeded",
		"file_id", result.FileID,
		"original_size", result.OriginalSize,
		"compressed_size", result.CompressedSize)
}

// abandonCurrentRun releases waiters of the run being discarded. Caller must
// hold the mutex.
func (w *Workflow) abandonCurrentRun() {
	if w.doneChan != nil && w.pendingTasks > 0 {
		close(w.doneChan)
		w.pendingTasks = 0
	}
}

func (w *Workflow) finishTask(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if gen != w.generation {
		return
	}

	w.pendingTasks--
	if w.pendingTasks == 0 {
		close(w.doneChan)
	}
}
