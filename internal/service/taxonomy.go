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

// TaxonomyService manages categories, fonts, colors and layout types. Admin only.
type TaxonomyService struct {
	base
	validator *validation.Validator
	now       func() time.Time
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(s store.Store, v *validation.Validator, queryTimeout time.Duration, logger *slog.Logger) *TaxonomyService {
	return &TaxonomyService{
		base:      newBase(s, queryTimeout, logger),
		validator: v,
		now:       time.Now,
	}
}

// TagInput is the admin payload for creating or updating a tag.
type TagInput struct {
	Name    string `json:"name" validate:"required,max=100"`
	Type    string `json:"type,omitempty" validate:"omitempty,variant"`
	HexCode string `json:"hex_code,omitempty" validate:"omitempty,hexrgb"`
}

func (s *TaxonomyService) checkInput(axis domain.Axis, in *TagInput) error {
	in.Name = normalize.Name(in.Name)
	in.Type = strings.TrimSpace(in.Type)
	in.HexCode = strings.ToUpper(strings.TrimSpace(in.HexCode))

	if err := s.validator.Validate(in); err != nil {
		return err
	}

	details := map[string]string{}
	switch {
	case axis == domain.AxisCategory && in.Type == "":
		details["type"] = "is required"
	case axis != domain.AxisCategory && in.Type != "":
		details["type"] = "only categories have a content type"
	}
	if axis != domain.AxisColor && in.HexCode != "" {
		details["hex_code"] = "only colors have a hex code"
	}
	if len(details) > 0 {
		return domainerrors.ValidationWithDetails("validation failed", details)
	}
	return nil
}

// List returns the tags on an axis, ordered by name. categoryType scopes
// categories to one content type and must be empty for other axes.
func (s *TaxonomyService) List(ctx context.Context, session *domain.Session, axis, categoryType string) ([]*domain.Tag, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	a, err := parseAxis(axis)
	if err != nil {
		return nil, err
	}
	var scope domain.Variant
	if categoryType != "" {
		if scope, err = parseVariant(categoryType); err != nil {
			return nil, err
		}
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	tags, err := s.store.ListTags(qctx, a, scope)
	if err != nil {
		return nil, s.storeError(ctx, err, string(a))
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	return tags, nil
}

// Get returns a single tag.
func (s *TaxonomyService) Get(ctx context.Context, session *domain.Session, axis, tagID string) (*domain.Tag, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	a, err := parseAxis(axis)
	if err != nil {
		return nil, err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	tag, err := s.store.GetTag(qctx, a, tagID)
	if err != nil {
		return nil, s.storeError(ctx, err, string(a))
	}
	return tag, nil
}

// Create adds a tag. Names are normalized before storage so that filtering by
// the displayed name always matches.
func (s *TaxonomyService) Create(ctx context.Context, session *domain.Session, axis string, in TagInput) (*domain.Tag, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	a, err := parseAxis(axis)
	if err != nil {
		return nil, err
	}
	if err := s.checkInput(a, &in); err != nil {
		return nil, err
	}

	tagID, err := id.ForAxis(a)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate id")
	}

	tag := &domain.Tag{
		ID:           tagID,
		Axis:         a,
		Name:         in.Name,
		CategoryType: domain.Variant(in.Type),
		HexCode:      in.HexCode,
		CreatedAt:    s.now().UTC(),
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	if err := s.store.CreateTag(qctx, tag); err != nil {
		return nil, s.storeError(ctx, err, string(a))
	}

	s.log(ctx).Info("tag created", "axis", a, "tag_id", tag.ID, "name", tag.Name, "user_id", session.UserID)
	return tag, nil
}

// Update replaces a tag's name, type and hex code. A category cannot change
// type while content of its current type still uses it.
func (s *TaxonomyService) Update(ctx context.Context, session *domain.Session, axis, tagID string, in TagInput) (*domain.Tag, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	a, err := parseAxis(axis)
	if err != nil {
		return nil, err
	}
	if err := s.checkInput(a, &in); err != nil {
		return nil, err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	tag, err := s.store.GetTag(qctx, a, tagID)
	if err != nil {
		return nil, s.storeError(ctx, err, string(a))
	}

	tag.Name = in.Name
	tag.CategoryType = domain.Variant(in.Type)
	tag.HexCode = in.HexCode

	if err := s.store.UpdateTag(qctx, tag); err != nil {
		return nil, s.storeError(ctx, err, string(a))
	}

	s.log(ctx).Info("tag updated", "axis", a, "tag_id", tag.ID, "user_id", session.UserID)
	return tag, nil
}

// Delete removes a tag and, through the junction cascades, every association to it.
func (s *TaxonomyService) Delete(ctx context.Context, session *domain.Session, axis, tagID string) error {
	if err := RequireAdmin(session); err != nil {
		return err
	}
	a, err := parseAxis(axis)
	if err != nil {
		return err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	if err := s.store.DeleteTag(qctx, a, tagID); err != nil {
		return s.storeError(ctx, err, string(a))
	}

	s.log(ctx).Info("tag deleted", "axis", a, "tag_id", tagID, "user_id", session.UserID)
	return nil
}
