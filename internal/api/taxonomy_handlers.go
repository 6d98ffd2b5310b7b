package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/service"
)

func (s *Server) registerTaxonomyRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTaxonomy",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/taxonomy/{axis}",
		Summary:     "List taxonomy entries",
		Description: "Returns every category, font, color or layout type, ordered by name",
		Tags:        []string{"Admin: Taxonomy"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTaxonomy)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTaxonomy",
		Method:        http.MethodPost,
		Path:          "/api/v1/admin/taxonomy/{axis}",
		Summary:       "Create taxonomy entry",
		Description:   "Creates a category, font, color or layout type",
		Tags:          []string{"Admin: Taxonomy"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTaxonomy)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTaxonomy",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/taxonomy/{axis}/{id}",
		Summary:     "Get taxonomy entry",
		Tags:        []string{"Admin: Taxonomy"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetTaxonomy)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTaxonomy",
		Method:      http.MethodPut,
		Path:        "/api/v1/admin/taxonomy/{axis}/{id}",
		Summary:     "Update taxonomy entry",
		Description: "Renames an entry or changes its hex code. A category's type cannot change.",
		Tags:        []string{"Admin: Taxonomy"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateTaxonomy)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTaxonomy",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/taxonomy/{axis}/{id}",
		Summary:     "Delete taxonomy entry",
		Description: "Deletes an entry and removes it from all content",
		Tags:        []string{"Admin: Taxonomy"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteTaxonomy)
}

// === DTOs ===

// ListTaxonomyInput contains parameters for listing an axis.
type ListTaxonomyInput struct {
	Authorization string `header:"Authorization"`
	Axis          string `path:"axis" doc:"category, font, color or layout"`
	Type          string `query:"type" doc:"Limit categories to this content type"`
}

// TaxonomyListResponse contains the entries of one axis.
type TaxonomyListResponse struct {
	Tags []*domain.Tag `json:"tags" doc:"Entries ordered by name"`
}

// TaxonomyListOutput wraps the entry list for Huma.
type TaxonomyListOutput struct {
	Body TaxonomyListResponse
}

// CreateTaxonomyInput wraps the create request for Huma.
type CreateTaxonomyInput struct {
	Authorization string `header:"Authorization"`
	Axis          string `path:"axis" doc:"category, font, color or layout"`
	Body          service.TagInput
}

// TaxonomyInput identifies one entry.
type TaxonomyInput struct {
	Authorization string `header:"Authorization"`
	Axis          string `path:"axis" doc:"category, font, color or layout"`
	ID            string `path:"id" doc:"Entry ID"`
}

// UpdateTaxonomyInput wraps the update request for Huma.
type UpdateTaxonomyInput struct {
	Authorization string `header:"Authorization"`
	Axis          string `path:"axis" doc:"category, font, color or layout"`
	ID            string `path:"id" doc:"Entry ID"`
	Body          service.TagInput
}

// TagOutput wraps one entry for Huma.
type TagOutput struct {
	Body *domain.Tag
}

// === Handlers ===

func (s *Server) handleListTaxonomy(ctx context.Context, input *ListTaxonomyInput) (*TaxonomyListOutput, error) {
	tags, err := s.services.Taxonomy.List(ctx, getSession(ctx), input.Axis, input.Type)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = []*domain.Tag{}
	}
	return &TaxonomyListOutput{Body: TaxonomyListResponse{Tags: tags}}, nil
}

func (s *Server) handleCreateTaxonomy(ctx context.Context, input *CreateTaxonomyInput) (*TagOutput, error) {
	tag, err := s.services.Taxonomy.Create(ctx, getSession(ctx), input.Axis, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleGetTaxonomy(ctx context.Context, input *TaxonomyInput) (*TagOutput, error) {
	tag, err := s.services.Taxonomy.Get(ctx, getSession(ctx), input.Axis, input.ID)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleUpdateTaxonomy(ctx context.Context, input *UpdateTaxonomyInput) (*TagOutput, error) {
	tag, err := s.services.Taxonomy.Update(ctx, getSession(ctx), input.Axis, input.ID, input.Body)
	if err != nil {
		return nil, err
	}
	return &TagOutput{Body: tag}, nil
}

func (s *Server) handleDeleteTaxonomy(ctx context.Context, input *TaxonomyInput) (*MessageOutput, error) {
	if err := s.services.Taxonomy.Delete(ctx, getSession(ctx), input.Axis, input.ID); err != nil {
		return nil, err
	}
	return message("deleted"), nil
}
