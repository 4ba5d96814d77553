package contracts

import (
	"context"
	"io"
)

// AttachmentStorage holds captured file blobs between the wizard's capture
// step and the final multipart submission.
type AttachmentStorage interface {
	UploadAttachment(ctx context.Context, objectKey string, content io.Reader, sizeInBytes int64, contentType string) error
	FetchAttachment(ctx context.Context, objectKey string) (io.ReadCloser, error)
	RemoveAttachment(ctx context.Context, objectKey string) error
}
