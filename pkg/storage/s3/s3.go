package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/skycodec/skycodec/pkg/logger"
	"gopkg.in/yaml.v2"
)

const TYPE string = "s3"

type Config struct {
	TimeoutInMillis int64  `yaml:"timeout_milliseconds"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	Prefix          string `yaml:"prefix"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

type S3Bucket struct {
	name            string
	region          string
	fixedPrefix     string
	timeoutInMillis int64
	client          *awss3.Client
	uploader        *manager.Uploader
	log             *slog.Logger
}

func New(l *slog.Logger, c *Config) (*S3Bucket, error) {
	awsConf, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(c.Region))
	if err != nil {
		return nil, fmt.Errorf("error creating S3 config: %w", err)
	}

	client := awss3.NewFromConfig(awsConf, func(o *awss3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = c.ForcePathStyle
	})

	return &S3Bucket{
		name:            c.Bucket,
		region:          c.Region,
		fixedPrefix:     c.Prefix,
		timeoutInMillis: c.TimeoutInMillis,
		client:          client,
		uploader:        manager.NewUploader(client),
		log:             l.With(logger.StorageTypeKey, TYPE),
	}, nil
}

func ParseConfig(confData []byte) (*Config, error) {
	conf := &Config{}

	err := yaml.Unmarshal(confData, conf)
	if err != nil {
		return conf, fmt.Errorf("error parsing S3 config: %w", err)
	}

	return conf, nil
}

func (bucket *S3Bucket) Save(key string, data []byte) error {
	ctx, cancel := bucket.operationContext()
	defer cancel()

	fullKey := mergeParts(bucket.fixedPrefix, key)
	_, err := bucket.uploader.Upload(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(bucket.name),
		Key:    aws.String(fullKey),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("error when uploading to S3: %w", err)
	}

	return nil
}

func (bucket *S3Bucket) Open(key string) ([]byte, error) {
	ctx, cancel := bucket.operationContext()
	defer cancel()

	fullKey := mergeParts(bucket.fixedPrefix, key)
	output, err := bucket.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket.name),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		return nil, fmt.Errorf("error when fetching from S3: %w", err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading S3 object body: %w", err)
	}

	return data, nil
}

func (bucket *S3Bucket) Type() string {
	return TYPE
}

func (bucket *S3Bucket) operationContext() (context.Context, context.CancelFunc) {
	if bucket.timeoutInMillis == 0 {
		return context.WithCancel(context.Background())
	}

	return context.WithTimeout(context.Background(),
		time.Duration(bucket.timeoutInMillis)*time.Millisecond)
}

func mergeParts(fixedPrefix string, key string) string {
	result := strings.Trim(fixedPrefix, "/") + "/" + strings.Trim(key, "/")
	return strings.Trim(result, "/")
}
