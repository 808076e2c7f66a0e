// Package transfer performs the real network calls of the workflow: the
// compress upload and the artifact download.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/domain"
	"github.com/skycodec/skycodec/pkg/logger"
	"github.com/sony/gobreaker"
)

const compressPath = "/api/compress"
const downloadPath = "/api/download/"

const defaultOpenInterval = 100 * time.Millisecond

// HTTPTransfer talks to the remote compression service. Failures of any kind
// (transport, timeout, non-2xx) surface as *domain.TransferError.
type HTTPTransfer struct {
	baseURL string
	log     *slog.Logger
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	metrics *metricCollector
}

func New(
	conf config.RemoteConfig, l *slog.Logger, metricRegistry *prometheus.Registry,
) (*HTTPTransfer, error) {

	if !strings.HasPrefix(conf.URL, "http") {
		return nil, fmt.Errorf("error creating transfer: the url should start with http or https")
	}

	client := &http.Client{
		Timeout: time.Duration(conf.TimeoutInMillis) * time.Millisecond,
		Transport: &http.Transport{
			MaxConnsPerHost: 2,
			IdleConnTimeout: 10 * time.Second,
		},
	}

	var breaker *gobreaker.CircuitBreaker
	if conf.CircuitBreaker.TurnOn {
		openInterval := defaultOpenInterval
		if conf.CircuitBreaker.OpenIntervalInMs > 0 {
			openInterval = time.Duration(conf.CircuitBreaker.OpenIntervalInMs) * time.Millisecond
		}

		breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "remote-transfer",
			Timeout: openInterval,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 1
			},
		})
	}

	return &HTTPTransfer{
		baseURL: strings.TrimSuffix(conf.URL, "/"),
		log:     l.With(logger.ComponentKey, "transfer"),
		client:  client,
		breaker: breaker,
		metrics: newMetricCollector(metricRegistry),
	}, nil
}

// Compress uploads the file's full binary content as multipart form data and
// parses the compression outcome.
func (t *HTTPTransfer) Compress(
	ctx context.Context, file *domain.SelectedFile,
) (*domain.CompressionResult, error) {

	startTime := time.Now()
	body, err := t.execute(func() ([]byte, error) {
		return t.doCompressRequest(ctx, file)
	})
	t.metrics.observeDuration("compress", time.Since(startTime))

	if err != nil {
		t.metrics.incRequest("compress", "failure")
		return nil, &domain.TransferError{Op: "compress", Err: err}
	}

	result := &domain.CompressionResult{}
	err = json.Unmarshal(body, result)
	if err != nil {
		t.metrics.incRequest("compress", "failure")
		return nil, &domain.TransferError{Op: "compress", Err: fmt.Errorf("error parsing response: %w", err)}
	}

	t.metrics.incRequest("compress", "success")
	return result, nil
}

// Download fetches the compressed byte stream for the given identifier.
func (t *HTTPTransfer) Download(ctx context.Context, fileID string) ([]byte, error) {
	startTime := time.Now()
	body, err := t.execute(func() ([]byte, error) {
		return t.doDownloadRequest(ctx, fileID)
	})
	t.metrics.observeDuration("download", time.Since(startTime))

	if err != nil {
		t.metrics.incRequest("download", "failure")
		return nil, &domain.TransferError{Op: "download", Err: err}
	}

	t.metrics.incRequest("download", "success")
	return body, nil
}

func (t *HTTPTransfer) execute(call func() ([]byte, error)) ([]byte, error) {
	if t.breaker == nil {
		return call()
	}

	body, err := t.breaker.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		return nil, err
	}

	return body.([]byte), nil
}

func (t *HTTPTransfer) doCompressRequest(
	ctx context.Context, file *domain.SelectedFile,
) ([]byte, error) {

	buf := &bytes.Buffer{}
	formWriter := multipart.NewWriter(buf)

	filePart, err := formWriter.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, fmt.Errorf("error creating multipart body: %w", err)
	}

	_, err = filePart.Write(file.Data)
	if err != nil {
		return nil, fmt.Errorf("error writing multipart body: %w", err)
	}

	err = formWriter.Close()
	if err != nil {
		return nil, fmt.Errorf("error finishing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+compressPath, buf)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}
	req.Header.Set("Content-Type", formWriter.FormDataContentType())

	return t.doRequest(req)
}

func (t *HTTPTransfer) doDownloadRequest(ctx context.Context, fileID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+downloadPath+fileID, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating http request: %w", err)
	}

	return t.doRequest(req)
}

func (t *HTTPTransfer) doRequest(req *http.Request) ([]byte, error) {
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error doing http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return body, nil
}
