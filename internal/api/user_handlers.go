package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/users",
		Summary:     "List users",
		Description: "Returns every account, newest first",
		Tags:        []string{"Admin: Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPatch,
		Path:        "/api/v1/admin/users/{id}",
		Summary:     "Update user",
		Description: "Changes a user's role, subscription status or email verification",
		Tags:        []string{"Admin: Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteUser",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/users/{id}",
		Summary:     "Delete user",
		Description: "Deletes an account. Admins cannot delete themselves or the last admin.",
		Tags:        []string{"Admin: Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteUser)
}

// ListUsersInput contains parameters for listing users.
type ListUsersInput struct {
	Authorization string `header:"Authorization"`
}

// ListUsersResponse contains every account.
type ListUsersResponse struct {
	Users []*domain.User `json:"users"`
}

// ListUsersOutput wraps the user list for Huma.
type ListUsersOutput struct {
	Body ListUsersResponse
}

// UpdateUserInput wraps the update request for Huma.
type UpdateUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
	Body          service.UpdateUserRequest
}

// DeleteUserInput contains parameters for deleting a user.
type DeleteUserInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"User ID"`
}

// UserOutput wraps a user for Huma.
type UserOutput struct {
	Body *domain.User
}

func (s *Server) handleListUsers(ctx context.Context, _ *ListUsersInput) (*ListUsersOutput, error) {
	users, err := s.services.Users.ListUsers(ctx, getSession(ctx))
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return &ListUsersOutput{Body: ListUsersResponse{Users: users}}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	user, err := s.services.Users.UpdateUser(ctx, getSession(ctx), input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: user}, nil
}

func (s *Server) handleDeleteUser(ctx context.Context, input *DeleteUserInput) (*MessageOutput, error) {
	if err := s.services.Users.DeleteUser(ctx, getSession(ctx), input.ID); err != nil {
		return nil, err
	}
	return message("deleted"), nil
}
