package storage

import (
	"context"
)

// FileStorage keeps uploaded images. Objects are addressed by the public URL returned from UploadImage.
type FileStorage interface {
	UploadImage(ctx context.Context, prefix string, data []byte, filename string) (string, error)

	DeleteFile(ctx context.Context, fileURL string) error
}
