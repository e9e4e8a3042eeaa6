// Package s3store persists uploaded campaign images in an S3-compatible
// bucket and hands back the object key as the stored reference.
package s3store

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"prism-ads/internal/config/configs"
)

// FileStore implements port.FileStore on top of an S3 bucket.
type FileStore struct {
	client *s3.Client
	bucket string
}

// NewFileStore builds the store from configuration. Path-style addressing
// keeps MinIO-style endpoints working.
func NewFileStore(ctx context.Context, cfg configs.S3) (*FileStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})
	return &FileStore{client: client, bucket: cfg.Bucket}, nil
}

// Store uploads the file under a fresh key and returns that key.
func (s *FileStore) Store(ctx context.Context, r io.Reader, ext string, size int64) (string, error) {
	key := fmt.Sprintf("campaigns/%s.%s", uuid.NewString(), ext)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          r,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return key, nil
}
