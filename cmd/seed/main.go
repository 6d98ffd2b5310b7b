// Package main seeds the database with the default gallery taxonomy.
//
// It inserts the stock categories, fonts, colors and layout types, leaving
// entries that already exist untouched, so it is safe to run repeatedly.
//
// Usage:
//
//	DATA_PATH=~/.gallery go run ./cmd/seed
//	DATA_PATH=~/.gallery go run ./cmd/seed --admin-email admin@example.com --admin-password 'Admin123!'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/shotgallery/gallery-server/internal/auth"
	"github.com/shotgallery/gallery-server/internal/config"
	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/id"
	"github.com/shotgallery/gallery-server/internal/logger"
	"github.com/shotgallery/gallery-server/internal/service"
	"github.com/shotgallery/gallery-server/internal/store"
	"github.com/shotgallery/gallery-server/internal/store/sqlite"
	"github.com/shotgallery/gallery-server/internal/validation"
)

var (
	adminEmail    = flag.String("admin-email", "", "Create or promote this account to admin when no admin exists")
	adminPassword = flag.String("admin-password", "", "Password for a newly created admin")
)

var defaultCategories = map[domain.Variant][]string{
	domain.VariantWebsite:   {"SaaS", "E-commerce", "Portfolio", "Agency", "Fintech"},
	domain.VariantSection:   {"Hero", "CTA", "About", "Pricing", "Testimonials", "Features"},
	domain.VariantDashboard: {"Analytics", "Admin", "Project Management", "CRM", "E-commerce"},
	domain.VariantFlow:      {"Onboarding", "Checkout", "Authentication", "Upgrade", "Settings"},
}

var defaultFonts = []string{"Inter", "Poppins", "Montserrat", "Roboto", "Open Sans", "Lato", "system-ui"}

var defaultColors = []struct {
	name, hex string
}{
	{"Blue", "#3B82F6"},
	{"Green", "#10B981"},
	{"Red", "#EF4444"},
	{"Purple", "#8B5CF6"},
	{"Orange", "#F59E0B"},
	{"Pink", "#EC4899"},
	{"Monochromatic", ""},
}

var defaultLayouts = []string{"Grid", "Sidebar", "Tabbed", "Card-based", "Minimal", "Dashboard"}

type seeder struct {
	store *sqlite.Store
	now   time.Time
}

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := os.MkdirAll(cfg.Data.BasePath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	lg := logger.New(logger.Config{Level: logger.ParseLevel(cfg.Logger.Level), Environment: cfg.App.Environment})

	fmt.Printf("Opening database at: %s\n", cfg.Data.DatabasePath())
	s, err := sqlite.Open(cfg.Data.DatabasePath(), lg.Logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	sd := &seeder{store: s, now: time.Now().UTC()}

	for _, v := range domain.Variants() {
		n, err := sd.seedAxis(ctx, domain.AxisCategory, v, defaultCategories[v], nil)
		if err != nil {
			log.Fatalf("Failed to seed %s categories: %v", v, err)
		}
		fmt.Printf("Categories (%s): %d added\n", v, n)
	}

	n, err := sd.seedAxis(ctx, domain.AxisFont, "", defaultFonts, nil)
	if err != nil {
		log.Fatalf("Failed to seed fonts: %v", err)
	}
	fmt.Printf("Fonts: %d added\n", n)

	names := make([]string, len(defaultColors))
	hex := make(map[string]string, len(defaultColors))
	for i, c := range defaultColors {
		names[i] = c.name
		hex[c.name] = c.hex
	}
	n, err = sd.seedAxis(ctx, domain.AxisColor, "", names, hex)
	if err != nil {
		log.Fatalf("Failed to seed colors: %v", err)
	}
	fmt.Printf("Colors: %d added\n", n)

	n, err = sd.seedAxis(ctx, domain.AxisLayout, "", defaultLayouts, nil)
	if err != nil {
		log.Fatalf("Failed to seed layout types: %v", err)
	}
	fmt.Printf("Layout types: %d added\n", n)

	if *adminEmail != "" {
		seedAdmin(ctx, cfg, s, lg)
	}

	fmt.Println("\nSeeding complete!")
}

// seedAxis inserts the names missing from axis and returns how many were added.
// Colors are not unique in storage, so existence is checked by listing first.
func (sd *seeder) seedAxis(ctx context.Context, axis domain.Axis, categoryType domain.Variant, names []string, hex map[string]string) (int, error) {
	existing, err := sd.store.ListTags(ctx, axis, categoryType)
	if err != nil {
		return 0, err
	}
	have := make(map[string]bool, len(existing))
	for _, t := range existing {
		have[t.Name] = true
	}

	added := 0
	for _, name := range names {
		if have[name] {
			continue
		}
		tagID, err := id.ForAxis(axis)
		if err != nil {
			return added, err
		}
		tag := &domain.Tag{
			ID:           tagID,
			Axis:         axis,
			Name:         name,
			CategoryType: categoryType,
			HexCode:      hex[name],
			CreatedAt:    sd.now,
		}
		if err := sd.store.CreateTag(ctx, tag); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}

func seedAdmin(ctx context.Context, cfg *config.Config, s *sqlite.Store, lg *logger.Logger) {
	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		log.Fatalf("Failed to load auth key: %v", err)
	}
	tokens, err := auth.NewTokenService(key, cfg.Auth.AccessTokenDuration)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	authService := service.NewAuthService(s, tokens, nil, validation.New(), cfg.Storage.QueryTimeout, lg.Logger)
	changed, err := authService.EnsureAdmin(ctx, *adminEmail, *adminPassword)
	if err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}
	if changed {
		fmt.Printf("Admin ready: %s\n", *adminEmail)
	} else {
		fmt.Println("An admin already exists, skipping")
	}
}
