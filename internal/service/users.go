package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/store"
)

// UserService handles admin-only user management.
type UserService struct {
	base
	now func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(s store.Store, queryTimeout time.Duration, logger *slog.Logger) *UserService {
	return &UserService{base: newBase(s, queryTimeout, logger), now: time.Now}
}

// UpdateUserRequest contains the fields an admin may change. Nil fields are left alone.
type UpdateUserRequest struct {
	Role          *domain.Role         `json:"role,omitempty"`
	Subscription  *domain.Subscription `json:"subscription_status,omitempty"`
	EmailVerified *bool                `json:"email_verified,omitempty"`
}

// ListUsers returns all users, newest first.
func (s *UserService) ListUsers(ctx context.Context, session *domain.Session) ([]*domain.User, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	users, err := s.store.ListUsers(qctx)
	if err != nil {
		return nil, s.storeError(ctx, err, "user")
	}
	if users == nil {
		users = []*domain.User{}
	}
	return users, nil
}

// UpdateUser changes a user's role, subscription or verification flag.
// The last admin cannot be demoted.
func (s *UserService) UpdateUser(ctx context.Context, session *domain.Session, userID string, req UpdateUserRequest) (*domain.User, error) {
	if err := RequireAdmin(session); err != nil {
		return nil, err
	}
	details := map[string]string{}
	if req.Role != nil && !req.Role.Valid() {
		details["role"] = "must be one of: user admin"
	}
	if req.Subscription != nil && !req.Subscription.Valid() {
		details["subscription_status"] = "must be one of: free pro"
	}
	if len(details) > 0 {
		return nil, domainerrors.ValidationWithDetails("validation failed", details)
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	user, err := s.store.GetUser(qctx, userID)
	if err != nil {
		return nil, s.storeError(ctx, err, "user")
	}

	if req.Role != nil && *req.Role != user.Role {
		if user.Role == domain.RoleAdmin {
			if err := s.ensureOtherAdminExists(qctx); err != nil {
				return nil, err
			}
		}
		user.Role = *req.Role
	}
	if req.Subscription != nil {
		user.Subscription = *req.Subscription
	}
	if req.EmailVerified != nil {
		user.EmailVerified = *req.EmailVerified
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateUser(qctx, user); err != nil {
		return nil, s.storeError(ctx, err, "user")
	}

	s.log(ctx).Info("user updated", "user_id", user.ID, "role", user.Role, "subscription", user.Subscription, "admin_id", session.UserID)
	return user, nil
}

// DeleteUser removes a user and, by cascade, all content they created.
func (s *UserService) DeleteUser(ctx context.Context, session *domain.Session, userID string) error {
	if err := RequireAdmin(session); err != nil {
		return err
	}
	if userID == session.UserID {
		return domainerrors.Conflict("cannot delete your own account")
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	user, err := s.store.GetUser(qctx, userID)
	if err != nil {
		return s.storeError(ctx, err, "user")
	}
	if user.IsAdmin() {
		if err := s.ensureOtherAdminExists(qctx); err != nil {
			return err
		}
	}

	if err := s.store.DeleteUser(qctx, userID); err != nil {
		return s.storeError(ctx, err, "user")
	}

	s.log(ctx).Info("user deleted", "user_id", userID, "admin_id", session.UserID)
	return nil
}

func (s *UserService) ensureOtherAdminExists(ctx context.Context) error {
	n, err := s.store.CountAdmins(ctx)
	if err != nil {
		return s.storeError(ctx, err, "user")
	}
	if n <= 1 {
		return domainerrors.Conflict("cannot remove the last admin")
	}
	return nil
}
