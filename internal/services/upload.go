package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

const DefaultMaxUploadBytes = 10 << 20

type objectUploader interface {
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, int64, error)
}

type uploadService struct {
	Uploader objectUploader
	MaxBytes int64
	newID    func() string
}

func NewUploadService(uploader objectUploader, maxBytes int64) *uploadService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &uploadService{Uploader: uploader, MaxBytes: maxBytes, newID: uuid.NewString}
}

// UploadImage stores an image under uploads/{uid}/ with a generated name.
func (s *uploadService) UploadImage(ctx context.Context, uid, filename, contentType string, size int64, r io.Reader) (dto.UploadResult, error) {
	var res dto.UploadResult

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return res, errs.NewValidationError("only image uploads are supported")
	}
	if size > s.MaxBytes {
		return res, errs.NewValidationError(fmt.Sprintf("image exceeds %d bytes", s.MaxBytes))
	}

	path := fmt.Sprintf("uploads/%s/%s%s", uid, s.newID(), extension(filename, mediaType))
	url, n, err := s.Uploader.Upload(ctx, path, mediaType, io.LimitReader(r, s.MaxBytes))
	if err != nil {
		return res, err
	}

	logger.FromContext(ctx).Info("image uploaded", "path", path, "bytes", n)
	return dto.UploadResult{URL: url, Path: path, ContentType: mediaType, Size: n}, nil
}

func extension(filename, mediaType string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" && strings.HasPrefix(mime.TypeByExtension(ext), "image/") {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
