package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/logger"
	"github.com/shotgallery/gallery-server/internal/store"
)

// DefaultQueryTimeout bounds a storage call when no timeout is configured.
const DefaultQueryTimeout = 5 * time.Second

// base carries what every store-backed service needs.
type base struct {
	store   store.Store
	timeout time.Duration
	logger  *slog.Logger
}

func newBase(s store.Store, timeout time.Duration, log *slog.Logger) base {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return base{store: s, timeout: timeout, logger: log}
}

// bounded derives the context a single storage call runs under.
func (b *base) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

func (b *base) log(ctx context.Context) *slog.Logger {
	return logger.FromContext(ctx, b.logger)
}

// storeError translates a store error into a domain error. what names the
// resource for not-found and conflict messages. Anything unrecognised is a
// storage failure: it is logged with detail and surfaced as UNAVAILABLE.
func (b *base) storeError(ctx context.Context, err error, what string) error {
	if err == nil {
		return nil
	}

	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		return domainerrors.ValidationWithDetails(verr.Message, map[string]string{verr.Field: verr.Message})
	case errors.Is(err, store.ErrInvalidInput):
		return domainerrors.Validation(err.Error())
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFoundf("%s not found", what)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.AlreadyExists(what + " already exists")
	}

	b.log(ctx).Error("storage call failed", "resource", what, "error", err)
	return domainerrors.Unavailable(err)
}

// parseVariant turns a path parameter into a Variant or a validation error.
func parseVariant(s string) (domain.Variant, error) {
	v, err := domain.ParseVariant(s)
	if err != nil {
		return "", domainerrors.ValidationWithDetails(err.Error(), map[string]string{"type": "must be one of: website section dashboard flow"})
	}
	return v, nil
}

// parseAxis turns a path parameter into an Axis or a validation error.
func parseAxis(s string) (domain.Axis, error) {
	a, err := domain.ParseAxis(s)
	if err != nil {
		return "", domainerrors.ValidationWithDetails(err.Error(), map[string]string{"axis": "must be one of: category font color layout"})
	}
	return a, nil
}
