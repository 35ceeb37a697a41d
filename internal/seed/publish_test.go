package seed

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3Writer struct {
	putObjectFunc func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func (m *mockS3Writer) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return m.putObjectFunc(ctx, params, optFns...)
}

type mockDynamoWriter struct {
	putItemFunc func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

func (m *mockDynamoWriter) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return m.putItemFunc(ctx, params, optFns...)
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Builtin()))

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Builtin(), decoded)
}

func TestPublisherPublish(t *testing.T) {
	var stored []byte
	var storedItem map[string]interface{}

	publisher := &Publisher{
		NewS3Client: func(ctx context.Context) (S3Writer, error) {
			return &mockS3Writer{
				putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
					assert.Equal(t, "bucket", aws.ToString(params.Bucket))
					assert.Equal(t, "catalogs/main.json", aws.ToString(params.Key))
					assert.Equal(t, "application/json", aws.ToString(params.ContentType))
					var err error
					stored, err = io.ReadAll(params.Body)
					return &s3.PutObjectOutput{}, err
				},
			}, nil
		},
		NewDynamoClient: func(ctx context.Context) (DynamoWriter, error) {
			return &mockDynamoWriter{
				putItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
					assert.Equal(t, "weather-catalogs", aws.ToString(params.TableName))
					require.NoError(t, attributevalue.UnmarshalMap(params.Item, &storedItem))
					return &dynamodb.PutItemOutput{}, nil
				},
			}, nil
		},
		Now: func() time.Time { return time.Unix(1735689600, 0) },
	}

	t.Run("s3", func(t *testing.T) {
		require.NoError(t, publisher.Publish(context.Background(), "s3://bucket/catalogs/main.json", Builtin()))
		decoded, err := Decode(bytes.NewReader(stored))
		require.NoError(t, err)
		assert.Equal(t, Builtin(), decoded)
	})

	t.Run("dynamodb", func(t *testing.T) {
		require.NoError(t, publisher.Publish(context.Background(), "dynamodb://weather-catalogs/prod", Builtin()))
		assert.Equal(t, "prod", storedItem["catalogId"])
		assert.EqualValues(t, 1735689600, storedItem["updatedAt"])
		assert.Contains(t, storedItem["document"], `"stations"`)
	})
}

func TestPublisherPublishErrors(t *testing.T) {
	failing := &Publisher{
		NewS3Client: func(ctx context.Context) (S3Writer, error) {
			return &mockS3Writer{
				putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
					return nil, errors.New("access denied")
				},
			}, nil
		},
		NewDynamoClient: func(ctx context.Context) (DynamoWriter, error) {
			return nil, errors.New("no credentials")
		},
		Now: time.Now,
	}

	tests := []struct {
		name    string
		dest    string
		wantErr string
	}{
		{name: "put fails", dest: "s3://bucket/key.json", wantErr: "access denied"},
		{name: "client fails", dest: "dynamodb://table/id", wantErr: "creating DynamoDB client"},
		{name: "missing key", dest: "s3://bucket", wantErr: "expected <container>/<name>"},
		{name: "local path", dest: "catalog.json", wantErr: "unsupported catalog destination"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := failing.Publish(context.Background(), tt.dest, Builtin())
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
