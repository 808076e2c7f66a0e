package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/logger"
	"github.com/skycodec/skycodec/pkg/server/httpmiddleware"
	"go.opentelemetry.io/otel/trace"
)

const apiComponentType = "api"

type Api struct {
	mux  *chi.Mux
	log  *slog.Logger
	srv  *http.Server
	port int
}

func New(
	l *slog.Logger,
	conf config.APIConfig,
	metricRegistry *prometheus.Registry,
	appVersion string,
	tracer trace.Tracer,
	svc *CompressionService,
) *Api {

	router := chi.NewRouter()
	logg := l.With(logger.ComponentKey, apiComponentType)

	sizeLimit, err := conf.PayloadSizeLimitInBytes()
	if err != nil {
		panic("payload size limit could not be extracted")
	}

	api := &Api{
		mux:  router,
		log:  logg,
		srv:  &http.Server{Addr: fmt.Sprintf(":%d", conf.Port), Handler: router},
		port: conf.Port,
	}

	initializeMetrics(metricRegistry)
	registerDefaultMiddlewares(api, sizeLimit, logg, tracer, metricRegistry)

	RegisterCompressionRoutes(api, svc, sizeLimit)
	RegisterOperationalRoutes(api, appVersion, metricRegistry)

	return api
}

func (api *Api) ListenAndServe() error {
	api.log.Info(fmt.Sprintf("Starting HTTP server on port %d", api.port))
	return fmt.Errorf("on serving HTTP: %w", api.srv.ListenAndServe())
}

func (api *Api) Shutdown() error {
	shutdownCtx, shutdownCtxRelease := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCtxRelease()

	return api.srv.Shutdown(shutdownCtx)
}

func registerDefaultMiddlewares(
	api *Api,
	sizeLimit int64,
	l *slog.Logger,
	tracer trace.Tracer,
	metricRegistry *prometheus.Registry,
) {

	//Middlewares on the top wrap the ones in the bottom
	api.mux.Use(httpmiddleware.NewLoggingMiddleware(l))
	api.mux.Use(httpmiddleware.NewMetricsMiddleware("skycodec", metricRegistry))
	api.mux.Use(httpmiddleware.NewTracingMiddleware(tracer))
	api.mux.Use(httpmiddleware.NewRecoverer(l))

	if sizeLimit > 0 {
		// The multipart framing adds overhead on top of the file content, so
		// the raw-body limit leaves headroom; the exact content-size check
		// happens in the compress handler.
		api.mux.Use(middleware.RequestSize(sizeLimit + multipartOverheadBytes))
	}
}
