package storage

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/exceptions"
	"io"

	"github.com/minio/minio-go/v7"
)

type minioStorage struct {
	MinioClient *minio.Client
	BucketName  string
}

func NewMinioStorage(minioClient *minio.Client, bucketName string) contracts.AttachmentStorage {
	return &minioStorage{
		MinioClient: minioClient,
		BucketName:  bucketName,
	}
}

func (m *minioStorage) UploadAttachment(ctx context.Context, objectKey string, content io.Reader, sizeInBytes int64, contentType string) error {
	_, err := m.MinioClient.PutObject(ctx, m.BucketName, objectKey, content, sizeInBytes, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	return nil
}

func (m *minioStorage) FetchAttachment(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	object, err := m.MinioClient.GetObject(ctx, m.BucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, exceptions.ErrMinioGetObject(err, m.BucketName)
	}

	return object, nil
}

func (m *minioStorage) RemoveAttachment(ctx context.Context, objectKey string) error {
	err := m.MinioClient.RemoveObject(ctx, m.BucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return exceptions.ErrMinioRemoveObject(err, m.BucketName)
	}

	return nil
}
