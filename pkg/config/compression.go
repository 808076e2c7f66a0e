package config

import (
	"fmt"
	"slices"
)

var allowedCompressions = []string{"gzip", "zlib", "deflate", "snappy", "zstd"}

type CompressionConfig struct {
	Level string `yaml:"level"`
	Type  string `yaml:"type"`
}

func (compConf CompressionConfig) fillDefaultValues() CompressionConfig {
	if compConf.Type == "" {
		compConf.Type = "gzip"
	}
	return compConf
}

func (compConf CompressionConfig) validate() error {
	if compConf.Type == "" {
		return nil
	}

	if !slices.Contains(allowedCompressions, compConf.Type) {
		return fmt.Errorf("compression.type option must be one of %v", allowedCompressions)
	}

	return nil
}
