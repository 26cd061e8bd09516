package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewS3StorageRequiresConfig(t *testing.T) {
	_, err := NewS3Storage(nil)
	require.Error(t, err)

	_, err = NewS3Storage(&S3Config{Region: "ap-south-1"})
	require.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	s, err := NewS3Storage(&S3Config{
		AccessKey: "k",
		SecretKey: "s",
		Region:    "ap-south-1",
		Bucket:    "gobbl-restaurant-images-bucket",
	})
	require.NoError(t, err)

	got := s.PublicURL("42/42-1.jpg")
	require.Equal(t, "https://gobbl-restaurant-images-bucket.s3.ap-south-1.amazonaws.com/42/42-1.jpg", got)
}
