package main

import (
	"context"
	"os"

	"github.com/0xpriyanshu/img-upload-s3/internal/config"
	"github.com/0xpriyanshu/img-upload-s3/internal/database"
	"github.com/0xpriyanshu/img-upload-s3/internal/menu/repository"
	"github.com/0xpriyanshu/img-upload-s3/internal/migrate"
	"github.com/0xpriyanshu/img-upload-s3/internal/relocate"
	"github.com/0xpriyanshu/img-upload-s3/internal/storage"
	"github.com/0xpriyanshu/img-upload-s3/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	store, err := storage.NewS3Storage(&cfg.S3)
	if err != nil {
		logger.Fatalf("failed to build storage client: %v", err)
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			logger.Errorf("mongo disconnect: %v", err)
		}
	}()

	repo := repository.NewMongoRepo(client.Database(cfg.MongoDB.Database), cfg.MongoDB.Collection)
	relocator := relocate.New(store, cfg.Job.FetchTimeout)

	logger.Infof("starting menu image migration (bucket=%s region=%s skip=%d resume=%v)",
		cfg.S3.Bucket, cfg.S3.Region, cfg.Job.Skip, cfg.Job.Resume)

	if _, err := migrate.NewRunner(repo, relocator, cfg).Run(ctx); err != nil {
		// per-document failures are already counted in the stats; only a
		// cursor-level error lands here, and the deferred disconnect still runs
		logger.Errorf("migration aborted: %v", err)
	}
}
