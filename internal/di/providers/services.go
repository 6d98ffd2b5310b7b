package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shotgallery/gallery-server/internal/auth"
	"github.com/shotgallery/gallery-server/internal/config"
	"github.com/shotgallery/gallery-server/internal/logger"
	"github.com/shotgallery/gallery-server/internal/service"
	"github.com/shotgallery/gallery-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(_ do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideGalleryService provides the public listing service.
func ProvideGalleryService(i do.Injector) (*service.GalleryService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewGalleryService(storeHandle.Store, cfg.Storage.QueryTimeout, log.Logger), nil
}

// ProvideTaxonomyService provides the taxonomy management service.
func ProvideTaxonomyService(i do.Injector) (*service.TaxonomyService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTaxonomyService(storeHandle.Store, v, cfg.Storage.QueryTimeout, log.Logger), nil
}

// ProvideContentService provides the content management service.
func ProvideContentService(i do.Injector) (*service.ContentService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewContentService(storeHandle.Store, v, cfg.Storage.QueryTimeout, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokens := do.MustInvoke[*auth.TokenService](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokens, nil, v, cfg.Storage.QueryTimeout, log.Logger), nil
}

// ProvideUserService provides the user management service.
func ProvideUserService(i do.Injector) (*service.UserService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUserService(storeHandle.Store, cfg.Storage.QueryTimeout, log.Logger), nil
}

// ProvideUploadService provides the screenshot upload service.
func ProvideUploadService(i do.Injector) (*service.UploadService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	backend := do.MustInvoke[*UploadBackend](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewUploadService(backend.Store, cfg.Upload.MaxBytes, log.Logger), nil
}

// AdminBootstrap records whether startup had to create or promote an admin.
type AdminBootstrap struct {
	Changed bool
}

// ProvideAdminBootstrap makes sure an admin exists when ADMIN_EMAIL and
// ADMIN_PASSWORD are configured.
func ProvideAdminBootstrap(i do.Injector) (*AdminBootstrap, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authService := do.MustInvoke[*service.AuthService](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Admin.Email == "" {
		return &AdminBootstrap{}, nil
	}

	changed, err := authService.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password)
	if err != nil {
		return nil, err
	}
	if changed {
		log.Info("Bootstrap admin ready", "email", cfg.Admin.Email)
	}
	return &AdminBootstrap{Changed: changed}, nil
}
