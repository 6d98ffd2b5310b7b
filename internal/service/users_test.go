package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
)

func TestUserService_ListAndUpdate(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	user := env.signup(t, "member@example.com")

	users, err := env.users.ListUsers(ctx, env.admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	pro := domain.SubscriptionPro
	verified := true
	updated, err := env.users.UpdateUser(ctx, env.admin, user.ID, UpdateUserRequest{Subscription: &pro, EmailVerified: &verified})
	require.NoError(t, err)
	assert.Equal(t, domain.SubscriptionPro, updated.Subscription)
	assert.True(t, updated.EmailVerified)
	assert.Equal(t, domain.RoleUser, updated.Role)

	bogus := domain.Role("owner")
	_, err = env.users.UpdateUser(ctx, env.admin, user.ID, UpdateUserRequest{Role: &bogus})
	assertCode(t, err, domainerrors.CodeValidation)

	_, err = env.users.UpdateUser(ctx, env.admin, "usr-missing", UpdateUserRequest{Subscription: &pro})
	assertCode(t, err, domainerrors.CodeNotFound)
}

func TestUserService_LastAdminIsProtected(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	member := domain.RoleUser
	_, err := env.users.UpdateUser(ctx, env.admin, env.admin.UserID, UpdateUserRequest{Role: &member})
	assertCode(t, err, domainerrors.CodeConflict)

	second := env.signup(t, "second@example.com")
	admin := domain.RoleAdmin
	_, err = env.users.UpdateUser(ctx, env.admin, second.ID, UpdateUserRequest{Role: &admin})
	require.NoError(t, err)

	_, err = env.users.UpdateUser(ctx, env.admin, env.admin.UserID, UpdateUserRequest{Role: &member})
	require.NoError(t, err, "another admin exists now")
}

func TestUserService_DeleteCascadesContent(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	second := env.signup(t, "editor@example.com")
	admin := domain.RoleAdmin
	_, err := env.users.UpdateUser(ctx, env.admin, second.ID, UpdateUserRequest{Role: &admin})
	require.NoError(t, err)
	editor := &domain.Session{UserID: second.ID, Role: domain.RoleAdmin}

	cat := env.tag(t, domain.AxisCategory, "Hero", domain.VariantSection)
	item, err := env.content.Create(ctx, editor, "section", validItemInput(domain.TagSet{domain.AxisCategory: {cat.ID}}))
	require.NoError(t, err)

	assertCode(t, env.users.DeleteUser(ctx, env.admin, env.admin.UserID), domainerrors.CodeConflict)

	require.NoError(t, env.users.DeleteUser(ctx, env.admin, second.ID))

	_, err = env.gallery.Detail(ctx, "section", item.ID)
	assertCode(t, err, domainerrors.CodeNotFound)

	assertCode(t, env.users.DeleteUser(ctx, env.admin, second.ID), domainerrors.CodeNotFound)
}
