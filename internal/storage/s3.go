package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Storage is a thin wrapper around the minio client pointed at AWS S3.
type S3Storage struct {
	client *minio.Client
	bucket string
	region string
}

// NewS3Storage creates a storage client for the configured bucket. The bucket
// is expected to exist; objects are written with public-read URLs in mind.
func NewS3Storage(cfg *S3Config) (*S3Storage, error) {
	if cfg == nil || cfg.Region == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 config missing")
	}
	mc, err := minio.New(fmt.Sprintf("s3.%s.amazonaws.com", cfg.Region), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: true,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 new: %w", err)
	}
	return &S3Storage{client: mc, bucket: cfg.Bucket, region: cfg.Region}, nil
}

// Upload writes data from reader to the configured bucket under key,
// unconditionally overwriting any existing object.
func (s *S3Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

// PublicURL returns the canonical public URL for an object in the bucket.
func (s *S3Storage) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
