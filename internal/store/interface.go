// Package store defines the persistence interface for the gallery server.
package store

import (
	"context"

	"github.com/shotgallery/gallery-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CountAdmins(ctx context.Context) (int, error)

	// Taxonomy
	CreateTag(ctx context.Context, tag *domain.Tag) error
	GetTag(ctx context.Context, axis domain.Axis, id string) (*domain.Tag, error)
	ListTags(ctx context.Context, axis domain.Axis, categoryType domain.Variant) ([]*domain.Tag, error)
	UpdateTag(ctx context.Context, tag *domain.Tag) error
	DeleteTag(ctx context.Context, axis domain.Axis, id string) error

	// Content
	CreateItem(ctx context.Context, item *domain.Item, tags domain.TagSet) error
	GetItem(ctx context.Context, variant domain.Variant, id string) (*domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item, tags domain.TagSet) error
	DeleteItem(ctx context.Context, variant domain.Variant, id string) error

	// Associations
	ReplaceAssociations(ctx context.Context, variant domain.Variant, contentID string, tags domain.TagSet) error
	Associations(ctx context.Context, variant domain.Variant, contentID string) (domain.TagSet, error)

	// Queries
	List(ctx context.Context, q ListQuery) (*Page, error)
	GetDetail(ctx context.Context, variant domain.Variant, id string) (*domain.Detail, error)
}
