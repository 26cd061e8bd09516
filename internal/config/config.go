package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/0xpriyanshu/img-upload-s3/internal/storage"
)

// DefaultPlaceholderImage is the shared fallback URL written for items whose
// original image is missing or could not be relocated.
const DefaultPlaceholderImage = "https://gobbl-restaurant-images-bucket.s3.ap-south-1.amazonaws.com/placeholder/menu-item.jpg"

// Config holds the whole migration job configuration. It is built once in
// main and passed by pointer into the runner and relocator; nothing reads the
// environment after Load returns.
type Config struct {
	MongoDB MongoDBConfig
	S3      storage.S3Config
	Job     JobConfig
}

type MongoDBConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// JobConfig controls the migration run itself.
type JobConfig struct {
	// Name keys the persisted resume checkpoint.
	Name string
	// Skip drops a fixed number of leading documents from the scan.
	Skip int64
	// Resume picks up after the last checkpointed document id.
	Resume bool
	// PlaceholderImage is substituted when an item has no image or its
	// relocation fails.
	PlaceholderImage string
	FetchTimeout     time.Duration
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("MONGODB_DATABASE", "agentic")
	viper.SetDefault("MONGODB_COLLECTION", "restaurantmenus")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("S3_REGION", "ap-south-1")
	viper.SetDefault("S3_BUCKET", "gobbl-restaurant-images-bucket")
	viper.SetDefault("MIGRATION_JOB_NAME", "restaurantmenus-image-migration")
	viper.SetDefault("MIGRATION_SKIP", 0)
	viper.SetDefault("MIGRATION_RESUME", true)
	viper.SetDefault("PLACEHOLDER_IMAGE_URL", DefaultPlaceholderImage)
	viper.SetDefault("FETCH_TIMEOUT", 30)

	cfg := &Config{
		MongoDB: MongoDBConfig{
			URI:        viper.GetString("MONGODB_URI"),
			Database:   viper.GetString("MONGODB_DATABASE"),
			Collection: viper.GetString("MONGODB_COLLECTION"),
			Timeout:    time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		S3: storage.S3Config{
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Region:    viper.GetString("S3_REGION"),
			Bucket:    viper.GetString("S3_BUCKET"),
		},
		Job: JobConfig{
			Name:             viper.GetString("MIGRATION_JOB_NAME"),
			Skip:             viper.GetInt64("MIGRATION_SKIP"),
			Resume:           viper.GetBool("MIGRATION_RESUME"),
			PlaceholderImage: viper.GetString("PLACEHOLDER_IMAGE_URL"),
			FetchTimeout:     time.Duration(viper.GetInt("FETCH_TIMEOUT")) * time.Second,
		},
	}

	if cfg.MongoDB.URI == "" {
		return nil, fmt.Errorf("MONGODB_URI is not set in the environment")
	}

	return cfg, nil
}
