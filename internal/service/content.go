package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/id"
	"github.com/shotgallery/gallery-server/internal/normalize"
	"github.com/shotgallery/gallery-server/internal/store"
	"github.com/shotgallery/gallery-server/internal/validation"
)

// ContentService handles admin management of gallery content.
type ContentService struct {
	base
	validator *validation.Validator
	now       func() time.Time
}

// NewContentService creates a new content service.
func NewContentService(s store.Store, v *validation.Validator, queryTimeout time.Duration, logger *slog.Logger) *ContentService {
	return &ContentService{
		base:      newBase(s, queryTimeout, logger),
		validator: v,
		now:       time.Now,
	}
}

// ItemInput is the admin payload for creating or updating content.
// On update a nil Tags keeps the current associations.
type ItemInput struct {
	Title       string        `json:"title" validate:"required,min=3,max=200"`
	Description string        `json:"description" validate:"required,min=10,max=5000"`
	Screenshots []string      `json:"screenshot_urls" validate:"required,min=1,max=50,dive,screenshot"`
	WebsiteURL  string        `json:"website_url,omitempty" validate:"omitempty,http_url"`
	Tags        domain.TagSet `json:"tags,omitempty"`
}

// EditableItem is an item with the tag ids an edit form needs.
type EditableItem struct {
	*domain.Item
	Tags domain.TagSet `json:"tags"`
}

func (s *ContentService) checkInput(v domain.Variant, in *ItemInput, requireTags bool) error {
	in.Title = normalize.Text(in.Title)
	in.Description = normalize.Text(in.Description)
	in.WebsiteURL = strings.TrimSpace(in.WebsiteURL)
	for i, ref := range in.Screenshots {
		in.Screenshots[i] = strings.TrimSpace(ref)
	}

	if err := s.validator.Validate(in); err != nil {
		return err
	}

	details := map[string]string{}
	if !v.MultiScreenshot() && len(in.Screenshots) != 1 {
		details["screenshot_urls"] = "must contain exactly 1 item(s)"
	}
	if v != domain.VariantWebsite && in.WebsiteURL != "" {
		details["website_url"] = "only websites have a website url"
	}
	checkTagAxes(v, in.Tags, details)
	if (requireTags || in.Tags != nil) && len(in.Tags.IDs(domain.AxisCategory)) == 0 {
		details["tags.category"] = "must contain at least 1 item(s)"
	}
	if len(details) > 0 {
		return domainerrors.ValidationWithDetails("validation failed", details)
	}
	return nil
}

// checkTagAxes records every axis the variant cannot be tagged with.
func checkTagAxes(v domain.Variant, tags domain.TagSet, details map[string]string) {
	for axis := range tags {
		if !axis.Valid() {
			details["tags."+string(axis)] = "unknown taxonomy axis"
			continue
		}
		if !v.Supports(axis) {
			details["tags."+string(axis)] = string(v) + " content cannot be tagged by " + string(axis)
		}
	}
}

// List returns one page of a variant's content, newest first, unfiltered.
func (s *ContentService) List(ctx context.Context, session *domain.Session, variant string, page int) (*store.Page, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	v, err := parseVariant(variant)
	if err != nil {
		return nil, err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	p, err := s.store.List(qctx, store.ListQuery{Variant: v, Page: page})
	if err != nil {
		return nil, s.storeError(ctx, err, string(v))
	}
	return p, nil
}

// Get returns an item and its current tag ids for editing.
func (s *ContentService) Get(ctx context.Context, session *domain.Session, variant, itemID string) (*EditableItem, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	v, err := parseVariant(variant)
	if err != nil {
		return nil, err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	item, err := s.store.GetItem(qctx, v, itemID)
	if err != nil {
		return nil, s.storeError(ctx, err, string(v))
	}
	tags, err := s.store.Associations(qctx, v, itemID)
	if err != nil {
		return nil, s.storeError(ctx, err, string(v))
	}
	return &EditableItem{Item: item, Tags: tags}, nil
}

// Create adds a content item together with its tags.
func (s *ContentService) Create(ctx context.Context, session *domain.Session, variant string, in ItemInput) (*domain.Item, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	v, err := parseVariant(variant)
	if err != nil {
		return nil, err
	}
	if err := s.checkInput(v, &in, true); err != nil {
		return nil, err
	}

	itemID, err := id.ForVariant(v)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate id")
	}

	now := s.now().UTC()
	item := &domain.Item{
		ID:          itemID,
		Variant:     v,
		Title:       in.Title,
		Description: in.Description,
		Screenshots: in.Screenshots,
		WebsiteURL:  in.WebsiteURL,
		CreatedBy:   session.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	if err := s.store.CreateItem(qctx, item, in.Tags); err != nil {
		return nil, s.storeError(ctx, err, string(v))
	}

	s.log(ctx).Info("content created", "variant", v, "item_id", item.ID, "user_id", session.UserID)
	return item, nil
}

// Update overwrites an item's fields and, when in.Tags is set, its tags.
func (s *ContentService) Update(ctx context.Context, session *domain.Session, variant, itemID string, in ItemInput) (*domain.Item, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	v, err := parseVariant(variant)
	if err != nil {
		return nil, err
	}
	if err := s.checkInput(v, &in, false); err != nil {
		return nil, err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	item, err := s.store.GetItem(qctx, v, itemID)
	if err != nil {
		return nil, s.storeError(ctx, err, string(v))
	}

	item.Title = in.Title
	item.Description = in.Description
	item.Screenshots = in.Screenshots
	item.WebsiteURL = in.WebsiteURL
	item.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateItem(qctx, item, in.Tags); err != nil {
		return nil, s.storeError(ctx, err, string(v))
	}

	s.log(ctx).Info("content updated", "variant", v, "item_id", item.ID, "user_id", session.UserID)
	return item, nil
}

// Delete removes an item; its associations go with it.
func (s *ContentService) Delete(ctx context.Context, session *domain.Session, variant, itemID string) error {
	if err := RequireAdmin(session); err != nil {
		return err
	}
	v, err := parseVariant(variant)
	if err != nil {
		return err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	if err := s.store.DeleteItem(qctx, v, itemID); err != nil {
		return s.storeError(ctx, err, string(v))
	}

	s.log(ctx).Info("content deleted", "variant", v, "item_id", itemID, "user_id", session.UserID)
	return nil
}

// ReplaceTags sets the item's tags to exactly tags across every axis of its
// variant. Either everything is applied or nothing is.
func (s *ContentService) ReplaceTags(ctx context.Context, session *domain.Session, variant, itemID string, tags domain.TagSet) (domain.TagSet, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	v, err := parseVariant(variant)
	if err != nil {
		return nil, err
	}
	details := map[string]string{}
	checkTagAxes(v, tags, details)
	if len(details) > 0 {
		return nil, domainerrors.ValidationWithDetails("validation failed", details)
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	if err := s.store.ReplaceAssociations(qctx, v, itemID, tags); err != nil {
		return nil, s.storeError(ctx, err, string(v))
	}
	current, err := s.store.Associations(qctx, v, itemID)
	if err != nil {
		return nil, s.storeError(ctx, err, string(v))
	}
	return current, nil
}
