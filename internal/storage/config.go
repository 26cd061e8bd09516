package storage

// S3Config holds object-storage connection configuration.
type S3Config struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
}
