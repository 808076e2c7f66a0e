package config

import "fmt"

var allowedStorageTypes = []string{"", "localstorage", "s3"}

type StorageConfig struct {
	Type   string      `yaml:"type"`
	Config interface{} `yaml:"config"`
}

func (stgConf StorageConfig) fillDefaults() StorageConfig {
	if stgConf.Type == "" {
		stgConf.Type = "localstorage"
	}
	return stgConf
}

func (stgConf StorageConfig) validate() error {
	if !allowed(allowedStorageTypes, stgConf.Type) {
		return fmt.Errorf("object_storage.type must be one of %v", allowedStorageTypes)
	}
	return nil
}
