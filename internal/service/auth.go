package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shotgallery/gallery-server/internal/auth"
	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/id"
	"github.com/shotgallery/gallery-server/internal/normalize"
	"github.com/shotgallery/gallery-server/internal/store"
	"github.com/shotgallery/gallery-server/internal/validation"
)

// AuthService handles signup, credential login and token verification.
type AuthService struct {
	base
	tokens    *auth.TokenService
	hasher    *auth.Hasher
	validator *validation.Validator
	now       func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	s store.Store,
	tokens *auth.TokenService,
	hasher *auth.Hasher,
	v *validation.Validator,
	queryTimeout time.Duration,
	logger *slog.Logger,
) *AuthService {
	if hasher == nil {
		hasher = auth.NewHasher(auth.DefaultParams)
	}
	return &AuthService{
		base:      newBase(s, queryTimeout, logger),
		tokens:    tokens,
		hasher:    hasher,
		validator: v,
		now:       time.Now,
	}
}

// SignupRequest contains the data for a new account.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains an access token and the user it was issued for.
type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

var errInvalidCredentials = domainerrors.InvalidCredentials("invalid email or password")

// Signup creates a free account and signs it in.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	req.Email = normalize.Email(req.Email)
	req.Name = normalize.Name(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.newUser(req.Email, req.Password, req.Name, domain.RoleUser)
	if err != nil {
		return nil, err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	if err := s.store.CreateUser(qctx, user); err != nil {
		if domainerrors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("email already in use")
		}
		return nil, s.storeError(ctx, err, "user")
	}

	s.log(ctx).Info("user signed up", "user_id", user.ID, "email", user.Email)
	return s.issue(user)
}

// Login verifies credentials. Unknown emails and wrong passwords fail the same
// way and cost the same hashing work.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	req.Email = normalize.Email(req.Email)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	user, err := s.store.GetUserByEmail(qctx, req.Email)
	if domainerrors.Is(err, store.ErrNotFound) {
		s.hasher.VerifyDummy(req.Password)
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, s.storeError(ctx, err, "user")
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		s.log(ctx).Info("login failed", "user_id", user.ID)
		return nil, errInvalidCredentials
	}

	return s.issue(user)
}

// ResolveSession verifies an access token and returns the caller's session
// built from the user's current role and subscription.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.Session, *domain.User, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, nil, domainerrors.Unauthorized("invalid or expired token")
	}

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	user, err := s.store.GetUser(qctx, claims.UserID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, nil, domainerrors.Unauthorized("invalid or expired token")
	}
	if err != nil {
		return nil, nil, s.storeError(ctx, err, "user")
	}

	return user.Session(), user, nil
}

// EnsureAdmin makes sure at least one admin exists. When none does, the
// account for email is promoted, or created with password if it is missing.
// Returns true when it changed anything.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalize.Email(email)

	qctx, cancel := s.bounded(ctx)
	defer cancel()

	n, err := s.store.CountAdmins(qctx)
	if err != nil {
		return false, s.storeError(ctx, err, "user")
	}
	if n > 0 {
		return false, nil
	}

	existing, err := s.store.GetUserByEmail(qctx, email)
	switch {
	case err == nil:
		existing.Role = domain.RoleAdmin
		existing.UpdatedAt = s.now().UTC()
		if err := s.store.UpdateUser(qctx, existing); err != nil {
			return false, s.storeError(ctx, err, "user")
		}
		s.log(ctx).Info("promoted existing user to admin", "user_id", existing.ID, "email", email)
		return true, nil
	case !domainerrors.Is(err, store.ErrNotFound):
		return false, s.storeError(ctx, err, "user")
	}

	user, err := s.newUser(email, password, "Administrator", domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	user.EmailVerified = true
	if err := s.store.CreateUser(qctx, user); err != nil {
		return false, s.storeError(ctx, err, "user")
	}

	s.log(ctx).Info("created admin user", "user_id", user.ID, "email", email)
	return true, nil
}

func (s *AuthService) newUser(email, password, name string, role domain.Role) (*domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, domainerrors.Validationf("invalid password: %v", err)
	}
	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to generate id")
	}
	now := s.now().UTC()
	return &domain.User{
		ID:           userID,
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
		Subscription: domain.SubscriptionFree,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (s *AuthService) issue(user *domain.User) (*AuthResponse, error) {
	token, expires, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "failed to issue token")
	}
	return &AuthResponse{User: user, AccessToken: token, ExpiresAt: expires}, nil
}
