package config

import "fmt"

var allowedEventQueueTypes = []string{"", "noop", "sqs"}

type EventQueueConfig struct {
	Type   string      `yaml:"type"`
	Config interface{} `yaml:"config"`
}

func (eqConf EventQueueConfig) fillDefaults() EventQueueConfig {
	if eqConf.Type == "" {
		eqConf.Type = "noop"
	}
	return eqConf
}

func (eqConf EventQueueConfig) validate() error {
	if !allowed(allowedEventQueueTypes, eqConf.Type) {
		return fmt.Errorf("event_queue.type must be one of %v", allowedEventQueueTypes)
	}
	return nil
}
