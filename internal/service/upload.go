package service

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/upload"
)

// UploadService accepts screenshot uploads from admins.
// Images are checked by their magic bytes only; nothing is decoded or resized.
type UploadService struct {
	uploads  upload.Store
	maxBytes int64
	logger   *slog.Logger
}

// NewUploadService creates a new upload service.
func NewUploadService(uploads upload.Store, maxBytes int64, logger *slog.Logger) *UploadService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UploadService{uploads: uploads, maxBytes: maxBytes, logger: logger}
}

// MaxBytes returns the upload size limit.
func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Save stores an image read from r and returns the reference to put in a
// content item's screenshot list.
func (s *UploadService) Save(ctx context.Context, session *domain.Session, filename string, r io.Reader) (string, error) {
	if err := RequireAdmin(session); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", domainerrors.Validationf("failed to read upload: %v", err)
	}
	if n == 0 {
		return "", domainerrors.Validation("no file uploaded")
	}
	if n > s.maxBytes {
		return "", domainerrors.TooLarge("file too large")
	}

	data := buf.Bytes()
	contentType := upload.DetectImageType(data)
	if contentType == "" {
		return "", domainerrors.Validation("invalid image format. Supported formats: JPEG, PNG, WebP, GIF")
	}

	key, err := upload.NewKey(contentType)
	if err != nil {
		return "", domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to name upload")
	}

	ref, err := s.uploads.Put(ctx, key, contentType, data)
	if err != nil {
		s.logger.Error("failed to store upload", "filename", filename, "key", key, "error", err)
		return "", domainerrors.Unavailable(err)
	}

	s.logger.Info("upload stored",
		"filename", filename,
		"ref", ref,
		"size", n,
		"content_type", contentType,
		"user_id", session.UserID,
	)
	return ref, nil
}
