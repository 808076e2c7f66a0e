package config

import (
	"errors"
	"fmt"
)

const DefaultMaxFileSize = "10MB"
const DefaultStageIntervalInMillis = 800
const DefaultOutputNamePolicy = "replace_extension"

// WorkflowConfig tunes the client-side processing workflow.
type WorkflowConfig struct {
	MaxFileSize           string `yaml:"max_file_size"`
	StageIntervalInMillis int64  `yaml:"stage_interval_milliseconds"`
	OutputNamePolicy      string `yaml:"output_name_policy"`
	DownloadDir           string `yaml:"download_dir"`
}

func (wConf WorkflowConfig) fillDefaults() WorkflowConfig {
	if wConf.MaxFileSize == "" {
		wConf.MaxFileSize = DefaultMaxFileSize
	}

	if wConf.StageIntervalInMillis == 0 {
		wConf.StageIntervalInMillis = DefaultStageIntervalInMillis
	}

	if wConf.OutputNamePolicy == "" {
		wConf.OutputNamePolicy = DefaultOutputNamePolicy
	}

	if wConf.DownloadDir == "" {
		wConf.DownloadDir = "."
	}

	return wConf
}

func (wConf WorkflowConfig) validate() error {
	_, err := ToBytes(wConf.MaxFileSize)
	if err != nil {
		return fmt.Errorf("invalid workflow max file size: %w", err)
	}

	if wConf.StageIntervalInMillis < 0 {
		return errors.New("workflow.stage_interval_milliseconds cannot be negative")
	}

	if !allowed(allowedValues("workflow.output_name_policy"), wConf.OutputNamePolicy) {
		return fmt.Errorf("workflow.output_name_policy should be one of %v",
			allowedValues("workflow.output_name_policy"))
	}

	return nil
}

func (wConf WorkflowConfig) MaxFileSizeInBytes() (int64, error) {
	return ToBytes(wConf.MaxFileSize)
}
