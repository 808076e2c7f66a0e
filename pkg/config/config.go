package config

import (
	"gopkg.in/yaml.v2"
)

var allowedVals map[string][]string

func init() {
	allowedVals = map[string][]string{
		"log.level":                   {"debug", "info", "warn", "error"},
		"log.format":                  {"json", "text"},
		"workflow.output_name_policy": {"replace_extension", "prefix"},
	}
}

type Config struct {
	Log             LogConfig         `yaml:"log"`
	Version         string            `yaml:"version"` //FIXME: fill the version
	API             APIConfig         `yaml:"api"`
	Remote          RemoteConfig      `yaml:"remote"`
	Workflow        WorkflowConfig    `yaml:"workflow"`
	Compression     CompressionConfig `yaml:"compression"`
	ObjectStorage   StorageConfig     `yaml:"object_storage"`
	EventQueue      EventQueueConfig  `yaml:"event_queue"`
	Tracing         TracingConfig     `yaml:"tracing"`
	DisableMaxProcs bool              `yaml:"disable_max_procs"`
}

func New(confData []byte) (*Config, error) {
	c := &Config{}

	err := yaml.Unmarshal(confData, &c)
	if err != nil {
		return nil, err
	}

	c.fillDefaultValues()

	err = c.validate()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	err := c.API.validate()
	if err != nil {
		return err
	}

	err = c.Remote.validate()
	if err != nil {
		return err
	}

	err = c.Workflow.validate()
	if err != nil {
		return err
	}

	err = c.Compression.validate()
	if err != nil {
		return err
	}

	err = c.ObjectStorage.validate()
	if err != nil {
		return err
	}

	err = c.EventQueue.validate()
	if err != nil {
		return err
	}

	err = c.Log.validate()
	if err != nil {
		return err
	}

	return c.Tracing.validate()
}

func allowed(group []string, elem string) bool {
	for _, a := range group {
		if a == elem {
			return true
		}
	}
	return false
}

func allowedValues(key string) []string {
	return allowedVals[key]
}

func (c *Config) fillDefaultValues() {
	c.Log = c.Log.fillDefaults()
	c.API = c.API.fillDefaults()
	c.Remote = c.Remote.fillDefaults()
	c.Workflow = c.Workflow.fillDefaults()
	c.Compression = c.Compression.fillDefaultValues()
	c.ObjectStorage = c.ObjectStorage.fillDefaults()
	c.EventQueue = c.EventQueue.fillDefaults()
	c.Tracing = c.Tracing.fillDefaults()
}
