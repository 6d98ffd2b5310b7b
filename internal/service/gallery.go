package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/normalize"
	"github.com/shotgallery/gallery-server/internal/store"
)

// GalleryService serves the public browsing surface: listings, details and filter options.
type GalleryService struct {
	base
}

// NewGalleryService creates a new gallery service.
func NewGalleryService(s store.Store, queryTimeout time.Duration, logger *slog.Logger) *GalleryService {
	return &GalleryService{base: newBase(s, queryTimeout, logger)}
}

// Listing is one served listing page.
// Unavailable is set when storage failed; the page is then empty and the
// caller should show a retry message rather than an error page.
type Listing struct {
	Page        *store.Page           `json:"page"`
	Access      domain.AccessDecision `json:"access"`
	Unavailable bool                  `json:"unavailable"`
}

// List returns a filtered page of content for the caller.
// Invalid queries fail with a validation error. Storage failures do not fail
// the call: they are logged and degrade to an empty, unavailable listing.
func (s *GalleryService) List(ctx context.Context, session *domain.Session, q store.ListQuery) (*Listing, error) {
	if len(q.Filters) > 0 {
		filters := make(map[domain.Axis]string, len(q.Filters))
		for axis, value := range q.Filters {
			filters[axis] = normalize.Name(value)
		}
		q.Filters = filters
	}
	if err := q.Validate(); err != nil {
		return nil, s.storeError(ctx, err, "listing")
	}

	access := domain.CanServePage(session, q.Page)

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	page, err := s.store.List(qctx, q)
	if err != nil {
		s.log(ctx).Error("listing unavailable",
			"variant", q.Variant,
			"page", q.Page,
			"error", err,
		)
		return &Listing{Page: store.EmptyPage(q.Page), Access: access, Unavailable: true}, nil
	}

	return &Listing{Page: page, Access: access}, nil
}

// Detail returns one item with its tag names. Details are not tier restricted.
func (s *GalleryService) Detail(ctx context.Context, variant, id string) (*domain.Detail, error) {
	v, err := parseVariant(variant)
	if err != nil {
		return nil, err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	detail, err := s.store.GetDetail(qctx, v, id)
	if err != nil {
		return nil, s.storeError(ctx, err, string(v))
	}
	return detail, nil
}

// FilterOptions lists the values a browser can filter by.
type FilterOptions struct {
	Categories  []*domain.Tag `json:"categories"`
	Fonts       []*domain.Tag `json:"fonts"`
	Colors      []*domain.Tag `json:"colors"`
	LayoutTypes []*domain.Tag `json:"layout_types"`
}

// FilterOptions loads every taxonomy concurrently. When variant is non-empty
// the categories are limited to that content type.
func (s *GalleryService) FilterOptions(ctx context.Context, variant string) (*FilterOptions, error) {
	var categoryType domain.Variant
	if variant != "" {
		v, err := parseVariant(variant)
		if err != nil {
			return nil, err
		}
		categoryType = v
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	opts := &FilterOptions{}
	targets := map[domain.Axis]*[]*domain.Tag{
		domain.AxisCategory: &opts.Categories,
		domain.AxisFont:     &opts.Fonts,
		domain.AxisColor:    &opts.Colors,
		domain.AxisLayout:   &opts.LayoutTypes,
	}

	g, gctx := errgroup.WithContext(qctx)
	for axis, dst := range targets {
		g.Go(func() error {
			scope := domain.Variant("")
			if axis == domain.AxisCategory {
				scope = categoryType
			}
			tags, err := s.store.ListTags(gctx, axis, scope)
			if err != nil {
				return err
			}
			if tags == nil {
				tags = []*domain.Tag{}
			}
			*dst = tags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.storeError(ctx, err, "filter options")
	}

	return opts, nil
}
