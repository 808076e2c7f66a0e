// Package storage persists compressed artifacts on the server side, either
// on a local directory or on S3.
package storage

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/skycodec/skycodec/pkg/config"
	"github.com/skycodec/skycodec/pkg/storage/localstorage"
	"github.com/skycodec/skycodec/pkg/storage/s3"
	"gopkg.in/yaml.v2"
)

const (
	s3Type           string = "s3"
	localStorageType string = "localstorage"
)

// ArtifactStore saves and retrieves compressed artifacts by key.
type ArtifactStore interface {
	Save(key string, data []byte) error
	Open(key string) ([]byte, error)
	Type() string
}

func New(
	l *slog.Logger, metricRegistry *prometheus.Registry, conf *config.StorageConfig,
) (ArtifactStore, error) {

	var store ArtifactStore
	specificConf, err := yaml.Marshal(conf.Config)
	if err != nil {
		return nil, fmt.Errorf("error parsing object storage config: %w", err)
	}

	switch conf.Type {
	case s3Type:
		s3Conf, err := s3.ParseConfig(specificConf)
		if err != nil {
			return nil, fmt.Errorf("error parsing s3-specific config: %w", err)
		}

		store, err = s3.New(l, s3Conf)
		if err != nil {
			return nil, fmt.Errorf("error creating S3 artifact store: %w", err)
		}
	case localStorageType:
		localConf, err := localstorage.ParseConfig(specificConf)
		if err != nil {
			return nil, fmt.Errorf("error parsing localstorage-specific config: %w", err)
		}

		store, err = localstorage.New(l, localConf)
		if err != nil {
			return nil, fmt.Errorf("error creating localstorage artifact store: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid object storage type %s", conf.Type)
	}

	return NewStoreWithMetrics(store, metricRegistry), nil
}
