package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

type S3Writer interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type DynamoWriter interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Encode writes the catalog as indented JSON that Decode reads back.
func Encode(w io.Writer, catalog *Catalog) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(catalog); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return nil
}

// Publisher stores catalogs at the locations a Loader reads from.
type Publisher struct {
	NewS3Client     func(ctx context.Context) (S3Writer, error)
	NewDynamoClient func(ctx context.Context) (DynamoWriter, error)
	Now             func() time.Time
}

func NewPublisher() *Publisher {
	return &Publisher{
		NewS3Client: func(ctx context.Context) (S3Writer, error) {
			return NewS3Client(ctx)
		},
		NewDynamoClient: func(ctx context.Context) (DynamoWriter, error) {
			return NewDynamoClient(ctx)
		},
		Now: time.Now,
	}
}

// Publish stores catalog at dest, which is "s3://bucket/key" or "dynamodb://table/catalogId".
func (p *Publisher) Publish(ctx context.Context, dest string, catalog *Catalog) error {
	var buf bytes.Buffer
	if err := Encode(&buf, catalog); err != nil {
		return err
	}

	dest = strings.TrimSpace(dest)
	switch {
	case strings.HasPrefix(dest, s3Scheme):
		bucket, key, err := splitLocation(strings.TrimPrefix(dest, s3Scheme))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", dest, err)
		}
		client, err := p.NewS3Client(ctx)
		if err != nil {
			return fmt.Errorf("creating S3 client: %w", err)
		}
		_, err = client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(buf.Bytes()),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return fmt.Errorf("putting %s: %w", dest, err)
		}

	case strings.HasPrefix(dest, dynamoScheme):
		table, id, err := splitLocation(strings.TrimPrefix(dest, dynamoScheme))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", dest, err)
		}
		item, err := ItemFromRecord(CatalogRecord{
			CatalogID: id,
			Document:  buf.String(),
			UpdatedAt: p.Now().Unix(),
		})
		if err != nil {
			return err
		}
		client, err := p.NewDynamoClient(ctx)
		if err != nil {
			return fmt.Errorf("creating DynamoDB client: %w", err)
		}
		if _, err := client.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(table), Item: item}); err != nil {
			return fmt.Errorf("putting %s: %w", dest, err)
		}

	default:
		return fmt.Errorf("unsupported catalog destination %q", dest)
	}

	log.Info().Str("destination", dest).Int("station_count", len(catalog.Stations)).Msg("Published catalog")
	return nil
}
