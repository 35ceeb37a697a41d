package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// S3Client defines the S3 operations a catalog source needs
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a JSON catalog stored as a single S3 object
type S3Source struct {
	client S3Client
	bucket string
	key    string
}

func NewS3Source(client S3Client, bucket, key string) *S3Source {
	return &S3Source{client: client, bucket: bucket, key: key}
}

// NewS3Client creates an S3 client, honouring S3_ENDPOINT for local development.
func NewS3Client(ctx context.Context) (*s3.Client, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	cfg, err := loadAWSConfig(ctx, endpoint != "")
	if err != nil {
		return nil, err
	}
	if endpoint == "" {
		return s3.NewFromConfig(cfg), nil
	}

	log.Debug().Str("endpoint", endpoint).Msg("Using local S3 endpoint")
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}), nil
}

func (s *S3Source) Fetch(ctx context.Context) (*Catalog, error) {
	if s.bucket == "" {
		return nil, fmt.Errorf("empty bucket name")
	}

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("getting s3://%s/%s: %w", s.bucket, s.key, err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.Error().Err(err).Msg("Error closing S3 object body")
		}
	}(result.Body)

	catalog, err := Decode(result.Body)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("bucket", s.bucket).
		Str("key", s.key).
		Int("station_count", len(catalog.Stations)).
		Msg("Loaded catalog from S3")
	return catalog, nil
}

// loadAWSConfig loads the default chain, or static local credentials when talking to a
// local emulator.
func loadAWSConfig(ctx context.Context, local bool) (aws.Config, error) {
	if !local {
		return config.LoadDefaultConfig(ctx)
	}
	return config.LoadDefaultConfig(ctx,
		config.WithRegion(getEnvOrDefault("AWS_REGION", "us-east-1")),
		config.WithCredentialsProvider(localCredentials()),
		config.WithClientLogMode(aws.LogRetries),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
