// Package app wires the configured components together, for both the server
// and the client entrypoints.
package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/eventqueue"
	"github.com/skycodec/skycodec/pkg/o11y/tracing"
	"github.com/skycodec/skycodec/pkg/server"
	"github.com/skycodec/skycodec/pkg/storage"
	"go.uber.org/automaxprocs/maxprocs"
)

type App struct {
	conf         *config.Config
	logger       *slog.Logger
	ctx          context.Context
	stopFunc     context.CancelFunc
	shutdownDone chan struct{}
}

func New(c *config.Config, logger *slog.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		conf:         c,
		logger:       logger,
		ctx:          ctx,
		stopFunc:     cancel,
		shutdownDone: make(chan struct{}),
	}
}

// Start runs the compression server until a signal or Stop arrives.
func (a *App) Start() {
	defer close(a.shutdownDone)

	if !a.conf.DisableMaxProcs {
		undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			a.logger.Debug("maxprocs", "message", format, "args", args)
		}))
		if err != nil {
			a.logger.Warn("error setting GOMAXPROCS", "error", err)
		}
		defer undo()
	}

	metricRegistry := prometheus.NewRegistry()
	registerDefaultMetrics(metricRegistry)

	tracer, tracerShutdown := tracing.NewTracer(a.conf.Tracing)

	store := createArtifactStore(a.logger, a.conf.ObjectStorage, metricRegistry)
	queue := createEventQueue(a.logger, a.conf.EventQueue, metricRegistry)

	svc := server.NewCompressionService(a.logger, a.conf.Compression, store, queue, time.Now)
	api := server.New(a.logger, a.conf.API, metricRegistry, a.conf.Version, tracer, svc)

	var g run.Group

	a.addShutdownRelatedActors(&g)

	g.Add(
		func() error {
			err := api.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("api listening and serving failed", "error", err)
			}
			return err
		},
		func(error) {
			a.logger.Info("shutting down api")
			if err := api.Shutdown(); err != nil {
				a.logger.Error("api shutdown failed", "error", err)
			}
		},
	)

	err := g.Run()
	if err != nil {
		a.logger.Error("something went wrong when running the components", "error", err)
	}

	err = tracerShutdown(context.Background())
	if err != nil {
		a.logger.Error("tracer shutdown failed", "error", err)
	}

	a.logger.Info("skycodec server stopped")
}

// Stop triggers a graceful shutdown and returns a channel closed when done.
func (a *App) Stop() <-chan struct{} {
	a.logger.Debug("app stop called")
	a.stopFunc()
	return a.shutdownDone
}

func (a *App) addShutdownRelatedActors(g *run.Group) {
	signalsCh := make(chan os.Signal, 2)
	signal.Notify(signalsCh, syscall.SIGINT, syscall.SIGTERM)

	g.Add(func() error {
		select {
		case s := <-signalsCh:
			a.logger.Info("received signal, shutting down", "signal", s.String())
		case <-a.ctx.Done():
		}
		return nil
	}, func(error) {
		a.stopFunc()
		signal.Reset(syscall.SIGINT, syscall.SIGTERM)
	})
}

func registerDefaultMetrics(registry *prometheus.Registry) {
	registry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(
			collectors.WithGoCollectorRuntimeMetrics(collectors.GoRuntimeMetricsRule{Matcher: regexp.MustCompile("/.*")}),
		),
	)
}

func createArtifactStore(l *slog.Logger, c config.StorageConfig, metricRegistry *prometheus.Registry) storage.ArtifactStore {
	store, err := storage.New(l, metricRegistry, &c)
	if err != nil {
		l.Error("error creating artifact store", "error", err)
		panic(err)
	}

	return store
}

func createEventQueue(l *slog.Logger, c config.EventQueueConfig, metricRegistry *prometheus.Registry) eventqueue.EventQueue {
	queue, err := eventqueue.New(l, metricRegistry, &c)
	if err != nil {
		l.Error("error creating event queue", "error", err)
		panic(err)
	}

	return queue
}
