package config_test

import (
	"testing"

	"github.com/skycodec/skycodec/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfigYaml = `
log:
  level: warn
  format: text

api:
  port: 9099
  payload_size_limit: 5MB

remote:
  url: http://localhost:9010
  timeout_milliseconds: 2500
  circuit_breaker:
    turn_on: true
    open_interval_in_ms: 250

workflow:
  max_file_size: 2MB
  stage_interval_milliseconds: 100
  output_name_policy: prefix
  download_dir: /tmp/downloads

compression:
  type: zstd
  level: "3"

object_storage:
  type: localstorage
  config:
    path: /tmp/artifacts

event_queue:
  type: noop

tracing:
  enabled: true
  service_name: skycodec-test
`

const minimalConfigYaml = `
remote:
  url: http://localhost:9010
`

func TestConfigParsesEveryField(t *testing.T) {
	conf, err := config.New([]byte(fullConfigYaml))
	require.NoError(t, err, "a full valid config should parse")

	assert.Equal(t, "warn", conf.Log.Level, "the log level should be parsed")
	assert.Equal(t, "text", conf.Log.Format, "the log format should be parsed")
	assert.Equal(t, 9099, conf.API.Port, "the api port should be parsed")
	assert.Equal(t, "5MB", conf.API.PayloadSizeLimit, "the payload size limit should be parsed")
	assert.Equal(t, "http://localhost:9010", conf.Remote.URL, "the remote url should be parsed")
	assert.Equal(t, int64(2500), conf.Remote.TimeoutInMillis, "the remote timeout should be parsed")
	assert.True(t, conf.Remote.CircuitBreaker.TurnOn, "the circuit breaker flag should be parsed")
	assert.Equal(t, int64(250), conf.Remote.CircuitBreaker.OpenIntervalInMs,
		"the circuit breaker open interval should be parsed")
	assert.Equal(t, "2MB", conf.Workflow.MaxFileSize, "the workflow max file size should be parsed")
	assert.Equal(t, int64(100), conf.Workflow.StageIntervalInMillis,
		"the stage interval should be parsed")
	assert.Equal(t, "prefix", conf.Workflow.OutputNamePolicy, "the output name policy should be parsed")
	assert.Equal(t, "/tmp/downloads", conf.Workflow.DownloadDir, "the download dir should be parsed")
	assert.Equal(t, "zstd", conf.Compression.Type, "the compression type should be parsed")
	assert.Equal(t, "3", conf.Compression.Level, "the compression level should be parsed")
	assert.Equal(t, "localstorage", conf.ObjectStorage.Type, "the storage type should be parsed")
	assert.Equal(t, "noop", conf.EventQueue.Type, "the event queue type should be parsed")
	assert.True(t, conf.Tracing.Enabled, "the tracing flag should be parsed")
	assert.Equal(t, "skycodec-test", conf.Tracing.ServiceName, "the tracing service name should be parsed")
}

func TestConfigFillsDefaults(t *testing.T) {
	conf, err := config.New([]byte(minimalConfigYaml))
	require.NoError(t, err, "a minimal valid config should parse")

	assert.Equal(t, "info", conf.Log.Level, "the log level should default to info")
	assert.Equal(t, "json", conf.Log.Format, "the log format should default to json")
	assert.Equal(t, config.DefaultPort, conf.API.Port, "the api port should have a default")
	assert.Equal(t, config.DefaultPayloadSizeLimit, conf.API.PayloadSizeLimit,
		"the payload size limit should have a default")
	assert.Equal(t, int64(config.DefaultRemoteTimeoutInMillis), conf.Remote.TimeoutInMillis,
		"the remote timeout should have a default")
	assert.Equal(t, config.DefaultMaxFileSize, conf.Workflow.MaxFileSize,
		"the workflow max file size should have a default")
	assert.Equal(t, int64(config.DefaultStageIntervalInMillis), conf.Workflow.StageIntervalInMillis,
		"the stage interval should default to 800ms")
	assert.Equal(t, config.DefaultOutputNamePolicy, conf.Workflow.OutputNamePolicy,
		"the output name policy should have a default")
	assert.Equal(t, ".", conf.Workflow.DownloadDir, "the download dir should default to the cwd")
	assert.Equal(t, "gzip", conf.Compression.Type, "the compression type should default to gzip")
	assert.Equal(t, "localstorage", conf.ObjectStorage.Type,
		"the storage type should default to localstorage")
	assert.Equal(t, "noop", conf.EventQueue.Type, "the event queue type should default to noop")
	assert.False(t, conf.Tracing.Enabled, "tracing should be off by default")
	assert.Equal(t, config.DefaultServiceNameOnO11y, conf.Tracing.ServiceName,
		"the tracing service name should have a default")

	maxSize, err := conf.Workflow.MaxFileSizeInBytes()
	require.NoError(t, err, "the default max file size should convert to bytes")
	assert.Equal(t, int64(10*1024*1024), maxSize, "the default max file size should be 10MiB")
}

func TestConfigValidation(t *testing.T) {
	testCases := []struct {
		caseName string
		yaml     string
	}{
		{"missing remote url", `
log:
  level: info`},
		{"remote url without http prefix", `
remote:
  url: localhost:9010`},
		{"negative remote timeout", `
remote:
  url: http://localhost:9010
  timeout_milliseconds: -1`},
		{"invalid log level", `
log:
  level: verbose
remote:
  url: http://localhost:9010`},
		{"invalid log format", `
log:
  format: logfmt
remote:
  url: http://localhost:9010`},
		{"invalid payload size limit", `
api:
  payload_size_limit: 10potatoes
remote:
  url: http://localhost:9010`},
		{"invalid workflow max file size", `
workflow:
  max_file_size: very-big
remote:
  url: http://localhost:9010`},
		{"negative stage interval", `
workflow:
  stage_interval_milliseconds: -5
remote:
  url: http://localhost:9010`},
		{"invalid output name policy", `
workflow:
  output_name_policy: suffix
remote:
  url: http://localhost:9010`},
		{"invalid compression type", `
compression:
  type: rar
remote:
  url: http://localhost:9010`},
		{"invalid storage type", `
object_storage:
  type: floppy
remote:
  url: http://localhost:9010`},
		{"invalid event queue type", `
event_queue:
  type: kafka
remote:
  url: http://localhost:9010`},
	}

	for _, tc := range testCases {
		_, err := config.New([]byte(tc.yaml))
		assert.Errorf(t, err, "config with %s should be rejected", tc.caseName)
	}
}

func TestToBytes(t *testing.T) {
	testCases := []struct {
		input    string
		expected int64
	}{
		{"", 0},
		{"123", 123},
		{"1KB", 1024},
		{"1kb", 1024},
		{"10MB", 10485760},
		{"10mb", 10485760},
		{"2GB", 2147483648},
		{"1TB", 1099511627776},
	}

	for _, tc := range testCases {
		result, err := config.ToBytes(tc.input)
		require.NoErrorf(t, err, "conversion of %q should not err", tc.input)
		assert.Equalf(t, tc.expected, result, "conversion of %q should yield %d", tc.input, tc.expected)
	}

	_, err := config.ToBytes("10XB")
	assert.Error(t, err, "an unknown unit should err")

	_, err = config.ToBytes("ten MB")
	assert.Error(t, err, "a non-numeric size should err")
}
