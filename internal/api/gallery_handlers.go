package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/service"
	"github.com/shotgallery/gallery-server/internal/store"
)

func (s *Server) registerGalleryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listGallery",
		Method:      http.MethodGet,
		Path:        "/api/v1/gallery/{variant}",
		Summary:     "List content",
		Description: "Returns one page of content of a type, newest first, optionally filtered by tag names",
		Tags:        []string{"Gallery"},
	}, s.handleListGallery)

	huma.Register(s.api, huma.Operation{
		OperationID: "getGalleryItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/gallery/{variant}/{id}",
		Summary:     "Get content detail",
		Description: "Returns one item with every screenshot and its tag names",
		Tags:        []string{"Gallery"},
	}, s.handleGetGalleryItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFilters",
		Method:      http.MethodGet,
		Path:        "/api/v1/filters",
		Summary:     "List filter options",
		Description: "Returns the categories, fonts, colors and layout types content can be filtered by",
		Tags:        []string{"Gallery"},
	}, s.handleListFilters)
}

// === DTOs ===

// ListGalleryInput contains parameters for listing content.
type ListGalleryInput struct {
	Variant  string `path:"variant" doc:"Content type: website, section, dashboard or flow"`
	Page     int    `query:"page" default:"1" doc:"1-based page number"`
	Category string `query:"category" doc:"Exact category name"`
	Font     string `query:"font" doc:"Exact font name (websites)"`
	Color    string `query:"color" doc:"Exact color name (websites, dashboards)"`
	Layout   string `query:"layout" doc:"Exact layout type name (dashboards)"`
}

// filters returns the non-empty filter parameters keyed by axis.
func (in *ListGalleryInput) filters() map[domain.Axis]string {
	params := map[domain.Axis]string{
		domain.AxisCategory: in.Category,
		domain.AxisFont:     in.Font,
		domain.AxisColor:    in.Color,
		domain.AxisLayout:   in.Layout,
	}
	filters := make(map[domain.Axis]string)
	for axis, value := range params {
		if value != "" {
			filters[axis] = value
		}
	}
	return filters
}

// PaginationResponse describes where a page sits in the full listing.
type PaginationResponse struct {
	Page         int `json:"page" doc:"Current page"`
	TotalPages   int `json:"total_pages" doc:"Number of pages, 0 when nothing matches"`
	TotalItems   int `json:"total_items" doc:"Number of matching items"`
	ItemsPerPage int `json:"items_per_page" doc:"Page size"`
}

// ListingResponse is one page of a listing.
type ListingResponse struct {
	Items       []domain.Summary      `json:"items" doc:"Items on this page"`
	Pagination  PaginationResponse    `json:"pagination"`
	Access      domain.AccessDecision `json:"access" doc:"Whether to show the upgrade prompt"`
	Unavailable bool                  `json:"unavailable" doc:"Storage was unavailable; show a retry message"`
}

// NewListingResponse converts a service listing to its wire shape.
func NewListingResponse(l *service.Listing) ListingResponse {
	return ListingResponse{
		Items: l.Page.Items,
		Pagination: PaginationResponse{
			Page:         l.Page.Page,
			TotalPages:   l.Page.TotalPages,
			TotalItems:   l.Page.TotalItems,
			ItemsPerPage: l.Page.PageSize,
		},
		Access:      l.Access,
		Unavailable: l.Unavailable,
	}
}

// ListingOutput wraps the listing response for Huma.
type ListingOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         ListingResponse
}

// GetGalleryItemInput contains parameters for getting one item.
type GetGalleryItemInput struct {
	Variant string `path:"variant" doc:"Content type"`
	ID      string `path:"id" doc:"Content ID"`
}

// DetailOutput wraps an item detail for Huma.
type DetailOutput struct {
	Body *domain.Detail
}

// ListFiltersInput contains parameters for listing filter options.
type ListFiltersInput struct {
	Type string `query:"type" doc:"Limit categories to this content type"`
}

// FiltersOutput wraps the filter options for Huma.
type FiltersOutput struct {
	Body *service.FilterOptions
}

// === Handlers ===

func (s *Server) handleListGallery(ctx context.Context, input *ListGalleryInput) (*ListingOutput, error) {
	listing, err := s.services.Gallery.List(ctx, getSession(ctx), store.ListQuery{
		Variant: domain.Variant(input.Variant),
		Page:    input.Page,
		Filters: input.filters(),
	})
	if err != nil {
		return nil, err
	}

	// The prompt depends on the caller, so listings are never shared by caches.
	return &ListingOutput{
		CacheControl: CacheNoStore,
		Body:         NewListingResponse(listing),
	}, nil
}

func (s *Server) handleGetGalleryItem(ctx context.Context, input *GetGalleryItemInput) (*DetailOutput, error) {
	detail, err := s.services.Gallery.Detail(ctx, input.Variant, input.ID)
	if err != nil {
		return nil, err
	}
	return &DetailOutput{Body: detail}, nil
}

func (s *Server) handleListFilters(ctx context.Context, input *ListFiltersInput) (*FiltersOutput, error) {
	opts, err := s.services.Gallery.FilterOptions(ctx, input.Type)
	if err != nil {
		return nil, err
	}
	return &FiltersOutput{Body: opts}, nil
}
