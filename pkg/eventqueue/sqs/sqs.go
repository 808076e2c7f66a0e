package sqs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/skycodec/skycodec/pkg/domain"
	"github.com/skycodec/skycodec/pkg/logger"
	"gopkg.in/yaml.v2"
)

const TYPE string = "sqs"

const defaultSendTimeout = 30 * time.Second

type Config struct {
	URL      string `yaml:"url"`
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

type SQSQueue struct {
	log      *slog.Logger
	client   *awssqs.Client
	queueURL string
}

func New(l *slog.Logger, c *Config) (*SQSQueue, error) {
	awsConf, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(c.Region))
	if err != nil {
		return nil, fmt.Errorf("error creating SQS config: %w", err)
	}

	client := awssqs.NewFromConfig(awsConf, func(o *awssqs.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})

	return &SQSQueue{
		log:      l.With(logger.EventQueueTypeKey, TYPE),
		client:   client,
		queueURL: c.URL,
	}, nil
}

func ParseConfig(confData []byte) (*Config, error) {
	conf := &Config{}

	err := yaml.Unmarshal(confData, conf)
	if err != nil {
		return conf, fmt.Errorf("error parsing SQS config: %w", err)
	}

	return conf, nil
}

func (queue *SQSQueue) Enqueue(event *domain.CompressionEvent) error {
	event.SchemaVersion = domain.EventSchemaVersion

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error generating event json: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSendTimeout)
	defer cancel()

	_, err = queue.client.SendMessage(ctx, &awssqs.SendMessageInput{
		QueueUrl:    aws.String(queue.queueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("error sending event to SQS: %w", err)
	}

	queue.log.Debug("compression event sent", "file_id", event.FileID)
	return nil
}

func (queue *SQSQueue) Type() string {
	return TYPE
}
