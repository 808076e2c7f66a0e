package localstorage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const TYPE string = "localstorage"

type Config struct {
	Path string `yaml:"path"`
}

type LocalStorage struct {
	path string
	log  *slog.Logger
}

func New(l *slog.Logger, c *Config) (*LocalStorage, error) {
	path, err := validateAndFormatPath(c.Path)
	if err != nil {
		return nil, fmt.Errorf("error creating localstorage: %w", err)
	}

	return &LocalStorage{path: path, log: l}, nil
}

func ParseConfig(confData []byte) (*Config, error) {
	conf := &Config{}

	err := yaml.Unmarshal(confData, conf)
	if err != nil {
		return conf, fmt.Errorf("error parsing localstorage config: %w", err)
	}

	return conf, nil
}

func (storage *LocalStorage) Save(key string, data []byte) error {
	fullFilePath := filepath.Join(storage.path, filepath.Base(key))

	err := os.WriteFile(fullFilePath, data, 0o644)
	if err != nil {
		return fmt.Errorf("error writing data into file: %w", err)
	}

	return nil
}

func (storage *LocalStorage) Open(key string) ([]byte, error) {
	fullFilePath := filepath.Join(storage.path, filepath.Base(key))

	data, err := os.ReadFile(fullFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading artifact file: %w", err)
	}

	return data, nil
}

func (storage *LocalStorage) Type() string {
	return TYPE
}

func validateAndFormatPath(path string) (string, error) {
	pathInfo, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			mkdirErr := os.MkdirAll(path, os.ModePerm)
			if mkdirErr != nil {
				return "", fmt.Errorf("error creating the storage directory: %w", mkdirErr)
			}
			return strings.TrimSuffix(path, "/"), nil
		}
		return "", fmt.Errorf("error on the provided path: %w", err)
	}

	if !pathInfo.IsDir() {
		return "", fmt.Errorf("provided path is not a directory")
	}

	return strings.TrimSuffix(path, "/"), nil
}
