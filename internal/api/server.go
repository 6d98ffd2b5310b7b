// Package api provides the HTTP API server and handlers for the gallery.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shotgallery/gallery-server/internal/store"
	"github.com/shotgallery/gallery-server/internal/upload"
)

// Options holds the server settings that do not come from services.
type Options struct {
	AllowedOrigins []string
	// UploadsDir is served under /uploads/ when the local upload backend is used.
	UploadsDir string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store             store.Store
	services          *Services
	router            *chi.Mux
	api               huma.API
	logger            *slog.Logger
	authRateLimiter   *RateLimiter
	uploadRateLimiter *RateLimiter
	uploadsDir        string
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, opts Options, logger *slog.Logger) *Server {
	s := &Server{
		store:             st,
		services:          services,
		router:            chi.NewRouter(),
		logger:            logger,
		authRateLimiter:   NewRateLimiter(authRatePerMinute, time.Minute, authRateBurst),
		uploadRateLimiter: NewRateLimiter(60, time.Minute, 20),
		uploadsDir:        opts.UploadsDir,
	}

	s.setupMiddleware(opts.AllowedOrigins)

	s.api = humachi.New(s.router, newHumaConfig())
	RegisterErrorHandler()

	s.setupRoutes()

	return s
}

// newHumaConfig returns the OpenAPI configuration shared by the server and tests.
func newHumaConfig() huma.Config {
	humaConfig := huma.DefaultConfig("Gallery API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	// Enveloped bodies do not match a registered schema, so skip $schema links.
	humaConfig.CreateHooks = nil
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	return humaConfig
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Stop releases background resources held by the server.
func (s *Server) Stop() {
	s.authRateLimiter.Stop()
	s.uploadRateLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(allowedOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	s.router.Use(authMiddleware(s.services.Auth))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerGalleryRoutes()
	s.registerTaxonomyRoutes()
	s.registerContentRoutes()
	s.registerUserRoutes()

	// Multipart uploads bypass huma so the body can be streamed.
	if s.services.Upload != nil {
		s.router.With(RateLimitMiddleware(s.uploadRateLimiter, s.logger)).
			Post("/api/v1/admin/uploads", s.handleUpload)
	}

	if s.uploadsDir != "" {
		files := http.StripPrefix(upload.PublicPrefix, http.FileServer(http.Dir(s.uploadsDir)))
		s.router.Handle(upload.PublicPrefix+"*", noDirectoryListing(cacheControl(CacheImmutable, files)))
	}
}
