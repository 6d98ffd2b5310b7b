package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	limited := huma.Middlewares{s.humaRateLimit(s.authRateLimiter)}

	huma.Register(s.api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/api/v1/auth/signup",
		Summary:       "Sign up",
		Description:   "Creates a free account and returns an access token",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusCreated,
		Middlewares:   limited,
	}, s.handleSignup)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/v1/auth/login",
		Summary:     "Log in",
		Description: "Exchanges email and password for an access token",
		Tags:        []string{"Auth"},
		Middlewares: limited,
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth/me",
		Summary:     "Get current user",
		Description: "Returns the user the access token was issued for",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)
}

// AuthResponse contains an access token and its user.
type AuthResponse = service.AuthResponse

// SignupInput wraps the signup request for Huma.
type SignupInput struct {
	Body service.SignupRequest
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body service.LoginRequest
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body *AuthResponse
}

// CurrentUserInput contains parameters for the current user request.
type CurrentUserInput struct {
	Authorization string `header:"Authorization"`
}

// CurrentUserResponse is the signed-in user with their access tier.
type CurrentUserResponse struct {
	*domain.User
	Tier domain.Tier `json:"tier" doc:"restricted or unrestricted"`
}

// CurrentUserOutput wraps the current user for Huma.
type CurrentUserOutput struct {
	Body CurrentUserResponse
}

func (s *Server) handleSignup(ctx context.Context, input *SignupInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Signup(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: resp}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, input.Body)
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: resp}, nil
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *CurrentUserInput) (*CurrentUserOutput, error) {
	user, err := RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return &CurrentUserOutput{
		Body: CurrentUserResponse{User: user, Tier: user.Session().Tier()},
	}, nil
}
