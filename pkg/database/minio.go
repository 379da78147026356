package database

import (
	"context"
	"time"
	"triz_edu_backend/internal/config"
	"triz_edu_backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// InitMinio connects to the object store and makes sure the progress bucket
// exists.
func InitMinio(cfg *config.MinioConfig) (*minio.Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
		logger.Log.Info("Created progress bucket", zap.String("bucket", cfg.Bucket))
	}

	logger.Log.Info("MinIO connection established", zap.String("endpoint", cfg.Endpoint))
	return client, nil
}
