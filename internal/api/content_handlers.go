package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/service"
	"github.com/shotgallery/gallery-server/internal/store"
)

func (s *Server) registerContentRoutes() {
	tags := []string{"Admin: Content"}
	security := []map[string][]string{{"bearer": {}}}

	huma.Register(s.api, huma.Operation{
		OperationID: "adminListContent",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/content/{variant}",
		Summary:     "List content for management",
		Description: "Returns an unfiltered page of content, newest first",
		Tags:        tags,
		Security:    security,
	}, s.handleAdminListContent)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createContent",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/content/{variant}",
		Summary:       "Create content",
		Description:   "Creates an item and its tag associations in one transaction",
		Tags:          tags,
		Security:      security,
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "adminGetContent",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/content/{variant}/{id}",
		Summary:     "Get content for editing",
		Description: "Returns an item with its tag ids per axis",
		Tags:        tags,
		Security:    security,
	}, s.handleAdminGetContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateContent",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/content/{variant}/{id}",
		Summary:     "Update content",
		Description: "Replaces an item's fields. When tags is present its associations are fully replaced.",
		Tags:        tags,
		Security:    security,
	}, s.handleUpdateContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteContent",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/content/{variant}/{id}",
		Summary:     "Delete content",
		Description: "Deletes an item and all of its tag associations",
		Tags:        tags,
		Security:    security,
	}, s.handleDeleteContent)

	huma.Register(s.api, huma.Operation{
		OperationID: "replaceContentTags",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/content/{variant}/{id}/tags",
		Summary:     "Replace content tags",
		Description: "Replaces every association of an item. Axes left out end up empty.",
		Tags:        tags,
		Security:    security,
	}, s.handleReplaceContentTags)
}

// === DTOs ===

// AdminListContentInput contains parameters for the management listing.
type AdminListContentInput struct {
	Authorization string `header:"Authorization"`
	Variant       string `path:"variant" doc:"Content type"`
	Page          int    `query:"page" default:"1" doc:"1-based page number"`
}

// AdminListResponse is one unfiltered page of content.
type AdminListResponse struct {
	Items      []domain.Summary   `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// AdminListOutput wraps the management listing for Huma.
type AdminListOutput struct {
	Body AdminListResponse
}

// CreateContentInput wraps the create request for Huma.
type CreateContentInput struct {
	Authorization string `header:"Authorization"`
	Variant       string `path:"variant" doc:"Content type"`
	Body          service.ItemInput
}

// ContentInput identifies one item.
type ContentInput struct {
	Authorization string `header:"Authorization"`
	Variant       string `path:"variant" doc:"Content type"`
	ID            string `path:"id" doc:"Content ID"`
}

// UpdateContentInput wraps the update request for Huma.
type UpdateContentInput struct {
	Authorization string `header:"Authorization"`
	Variant       string `path:"variant" doc:"Content type"`
	ID            string `path:"id" doc:"Content ID"`
	Body          service.ItemInput
}

// ReplaceTagsRequest carries the complete association set of an item.
type ReplaceTagsRequest struct {
	Tags domain.TagSet `json:"tags" doc:"Tag ids per axis"`
}

// ReplaceTagsInput wraps the replace tags request for Huma.
type ReplaceTagsInput struct {
	Authorization string `header:"Authorization"`
	Variant       string `path:"variant" doc:"Content type"`
	ID            string `path:"id" doc:"Content ID"`
	Body          ReplaceTagsRequest
}

// ItemOutput wraps an item for Huma.
type ItemOutput struct {
	Body *domain.Item
}

// EditableItemOutput wraps an item with its tag ids for Huma.
type EditableItemOutput struct {
	Body *service.EditableItem
}

// TagSetOutput wraps an association set for Huma.
type TagSetOutput struct {
	Body ReplaceTagsRequest
}

func newAdminListResponse(page *store.Page) AdminListResponse {
	return AdminListResponse{
		Items: page.Items,
		Pagination: PaginationResponse{
			Page:         page.Page,
			TotalPages:   page.TotalPages,
			TotalItems:   page.TotalItems,
			ItemsPerPage: page.PageSize,
		},
	}
}

// === Handlers ===

func (s *Server) handleAdminListContent(ctx context.Context, input *AdminListContentInput) (*AdminListOutput, error) {
	page, err := s.services.Content.List(ctx, getSession(ctx), input.Variant, input.Page)
	if err != nil {
		return nil, err
	}
	return &AdminListOutput{Body: newAdminListResponse(page)}, nil
}

func (s *Server) handleCreateContent(ctx context.Context, input *CreateContentInput) (*ItemOutput, error) {
	item, err := s.services.Content.Create(ctx, getSession(ctx), input.Variant, input.Body)
	if err != nil {
		return nil, err
	}
	return &ItemOutput{Body: item}, nil
}

func (s *Server) handleAdminGetContent(ctx context.Context, input *ContentInput) (*EditableItemOutput, error) {
	item, err := s.services.Content.Get(ctx, getSession(ctx), input.Variant, input.ID)
	if err != nil {
		return nil, err
	}
	return &EditableItemOutput{Body: item}, nil
}

func (s *Server) handleUpdateContent(ctx context.Context, input *UpdateContentInput) (*ItemOutput, error) {
	item, err := s.services.Content.Update(ctx, getSession(ctx), input.Variant, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &ItemOutput{Body: item}, nil
}

func (s *Server) handleDeleteContent(ctx context.Context, input *ContentInput) (*MessageOutput, error) {
	if err := s.services.Content.Delete(ctx, getSession(ctx), input.Variant, input.ID); err != nil {
		return nil, err
	}
	return message("deleted"), nil
}

func (s *Server) handleReplaceContentTags(ctx context.Context, input *ReplaceTagsInput) (*TagSetOutput, error) {
	tags, err := s.services.Content.ReplaceTags(ctx, getSession(ctx), input.Variant, input.ID, input.Body.Tags)
	if err != nil {
		return nil, err
	}
	return &TagSetOutput{Body: ReplaceTagsRequest{Tags: tags}}, nil
}
