package config

import (
	"errors"
	"strings"
)

const DefaultRemoteTimeoutInMillis = 60000

// RemoteConfig points the client at the remote compression service.
type RemoteConfig struct {
	URL             string               `yaml:"url"`
	TimeoutInMillis int64                `yaml:"timeout_milliseconds"`
	CircuitBreaker  CircuitBreakerConfig `yaml:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	TurnOn           bool  `yaml:"turn_on"`
	OpenIntervalInMs int64 `yaml:"open_interval_in_ms"`
}

func (remoteConf RemoteConfig) fillDefaults() RemoteConfig {
	if remoteConf.TimeoutInMillis == 0 {
		remoteConf.TimeoutInMillis = DefaultRemoteTimeoutInMillis
	}

	return remoteConf
}

func (remoteConf RemoteConfig) validate() error {
	if remoteConf.URL == "" {
		return errors.New("remote.url is mandatory")
	}

	if !strings.HasPrefix(remoteConf.URL, "http") {
		return errors.New("remote.url should start with http or https")
	}

	if remoteConf.TimeoutInMillis < 0 {
		return errors.New("remote.timeout_milliseconds cannot be negative")
	}

	return nil
}
