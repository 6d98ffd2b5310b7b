package api

import "github.com/shotgallery/gallery-server/internal/service"

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Gallery  *service.GalleryService  // Public listings, details and filter options
	Taxonomy *service.TaxonomyService // Admin category/font/color/layout management
	Content  *service.ContentService  // Admin content management
	Auth     *service.AuthService
	Users    *service.UserService
	Upload   *service.UploadService // Screenshot uploads; nil disables the route
}
