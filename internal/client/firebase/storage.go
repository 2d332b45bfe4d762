package firebaseclient

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"

	"github.com/GregMSThompson/flowadmin/internal/errs"
)

type StorageAdapter struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

func NewStorageAdapter(bucket *gcs.BucketHandle, bucketName string) *StorageAdapter {
	return &StorageAdapter{bucket: bucket, bucketName: bucketName}
}

// Upload streams r into the bucket at path and returns its public URL and
// the number of bytes written.
func (a *StorageAdapter) Upload(ctx context.Context, path, contentType string, r io.Reader) (string, int64, error) {
	w := a.bucket.Object(path).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=31536000"

	n, err := io.Copy(w, r)
	if err != nil {
		w.Close()
		return "", 0, errs.NewExternalServiceError("storage", "Error encountered while uploading file.", true, err)
	}
	if err := w.Close(); err != nil {
		return "", 0, errs.NewExternalServiceError("storage", "Error encountered while uploading file.", true, err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", a.bucketName, path), n, nil
}
