package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/shotgallery/gallery-server/internal/config"
	"github.com/shotgallery/gallery-server/internal/logger"
	"github.com/shotgallery/gallery-server/internal/upload"
)

// UploadBackend is the configured screenshot store.
// LocalDir is set only for the local backend, whose files the server serves itself.
type UploadBackend struct {
	Store    upload.Store
	LocalDir string
}

// ProvideUploadBackend selects the local or S3 upload store.
func ProvideUploadBackend(i do.Injector) (*UploadBackend, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	switch cfg.Upload.Backend {
	case config.UploadBackendS3:
		s3Store, err := upload.NewS3Store(context.Background(), upload.S3Config{
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("init s3 upload store: %w", err)
		}
		log.Info("Uploads stored in S3", "bucket", cfg.S3.Bucket, "region", cfg.S3.Region)
		return &UploadBackend{Store: s3Store}, nil

	default:
		local, err := upload.NewLocalStore(cfg.Data.UploadsPath())
		if err != nil {
			return nil, fmt.Errorf("init local upload store: %w", err)
		}
		log.Info("Uploads stored on disk", "path", local.Dir())
		return &UploadBackend{Store: local, LocalDir: local.Dir()}, nil
	}
}
