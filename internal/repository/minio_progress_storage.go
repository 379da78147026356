package repository

import (
	"bytes"
	"context"
	"io"
	"triz_edu_backend/internal/model"
	"triz_edu_backend/pkg/logger"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// MinioProgressStorage keeps the collection as one JSON object in a bucket.
type MinioProgressStorage struct {
	Client *minio.Client
	bucket string
	object string
}

func NewMinioProgressStorage(client *minio.Client, bucket, object string) *MinioProgressStorage {
	return &MinioProgressStorage{Client: client, bucket: bucket, object: object}
}

func (r *MinioProgressStorage) Load() []model.ModuleProgress {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	obj, err := r.Client.GetObject(ctx, r.bucket, r.object, minio.GetObjectOptions{})
	if err != nil {
		logger.Log.Warn("Failed to open progress object", zap.String("object", r.object), zap.Error(err))
		return []model.ModuleProgress{}
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code != "NoSuchKey" {
			logger.Log.Warn("Failed to read progress object", zap.String("object", r.object), zap.Error(err))
		}
		return []model.ModuleProgress{}
	}
	return decodeProgress("minio", raw)
}

func (r *MinioProgressStorage) Save(progress []model.ModuleProgress) error {
	data, err := encodeProgress(progress)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()

	_, err = r.Client.PutObject(ctx, r.bucket, r.object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

func (r *MinioProgressStorage) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return r.Client.RemoveObject(ctx, r.bucket, r.object, minio.RemoveObjectOptions{})
}
