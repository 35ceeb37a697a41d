package seed

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	SourceBuiltin = "builtin"

	s3Scheme     = "s3://"
	dynamoScheme = "dynamodb://"
)

// Loader resolves a catalog source string. The AWS clients are created lazily, only when
// a source needs them.
type Loader struct {
	NewS3Client     func(ctx context.Context) (S3Client, error)
	NewDynamoClient func(ctx context.Context) (DynamoClient, error)
}

// NewLoader returns a loader backed by the default AWS configuration.
func NewLoader() *Loader {
	return &Loader{
		NewS3Client: func(ctx context.Context) (S3Client, error) {
			return NewS3Client(ctx)
		},
		NewDynamoClient: func(ctx context.Context) (DynamoClient, error) {
			return NewDynamoClient(ctx)
		},
	}
}

// Load returns the catalog named by source: "" or "builtin" for the canonical fixtures,
// "s3://bucket/key", "dynamodb://table/catalogId", or a path to a local JSON file.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	source = strings.TrimSpace(source)
	switch {
	case source == "" || strings.EqualFold(source, SourceBuiltin):
		log.Debug().Msg("Using builtin catalog")
		return Builtin(), nil

	case strings.HasPrefix(source, s3Scheme):
		bucket, key, err := splitLocation(strings.TrimPrefix(source, s3Scheme))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", source, err)
		}
		client, err := l.NewS3Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating S3 client: %w", err)
		}
		return NewS3Source(client, bucket, key).Fetch(ctx)

	case strings.HasPrefix(source, dynamoScheme):
		table, id, err := splitLocation(strings.TrimPrefix(source, dynamoScheme))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", source, err)
		}
		client, err := l.NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		return NewDynamoSource(client, table, id).Fetch(ctx)

	default:
		return LoadFile(source)
	}
}

// LoadFile reads a JSON catalog from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Error closing catalog file")
		}
	}()

	catalog, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("station_count", len(catalog.Stations)).Msg("Loaded catalog from file")
	return catalog, nil
}

// splitLocation splits "container/name" where name may itself contain slashes.
func splitLocation(s string) (string, string, error) {
	container, name, ok := strings.Cut(s, "/")
	if !ok || container == "" || name == "" {
		return "", "", fmt.Errorf("expected <container>/<name>, got %q", s)
	}
	return container, name, nil
}
