package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/service"
)

func TestListGallery_FiltersIntersect(t *testing.T) {
	ts := setupTestServer(t)

	saas := ts.createTag(t, domain.AxisCategory, "SaaS", domain.VariantWebsite)
	blue := ts.createTag(t, domain.AxisColor, "Blue", "")
	green := ts.createTag(t, domain.AxisColor, "Green", "")

	ts.createItem(t, domain.VariantWebsite, "Acme", domain.TagSet{
		domain.AxisCategory: {saas.ID}, domain.AxisColor: {blue.ID},
	})
	ts.createItem(t, domain.VariantWebsite, "Globex", domain.TagSet{
		domain.AxisCategory: {saas.ID}, domain.AxisColor: {green.ID},
	})

	resp := ts.api.Get("/api/v1/gallery/website?category=SaaS&color=Blue")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, CacheNoStore, resp.Header().Get("Cache-Control"))

	envelope := decode[ListingResponse](t, resp)
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Acme", envelope.Data.Items[0].Title)
	assert.Equal(t, "/uploads/Acme.png", envelope.Data.Items[0].Thumbnail)
	assert.Equal(t, PaginationResponse{Page: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 12}, envelope.Data.Pagination)
	assert.False(t, envelope.Data.Unavailable)

	resp = ts.api.Get("/api/v1/gallery/website?category=SaaS")
	assert.Len(t, decode[ListingResponse](t, resp).Data.Items, 2)

	resp = ts.api.Get("/api/v1/gallery/website?color=Red")
	envelope = decode[ListingResponse](t, resp)
	assert.Empty(t, envelope.Data.Items)
	assert.NotNil(t, envelope.Data.Items, "empty listings encode as []")
	assert.Equal(t, 0, envelope.Data.Pagination.TotalPages)
}

func TestListGallery_UpgradePrompt(t *testing.T) {
	ts := setupTestServer(t)

	category := ts.createTag(t, domain.AxisCategory, "Analytics", domain.VariantDashboard)
	for i := 0; i < 30; i++ {
		ts.createItem(t, domain.VariantDashboard, fmt.Sprintf("Dashboard %02d", i), domain.TagSet{
			domain.AxisCategory: {category.ID},
		})
	}

	_, freeToken := ts.createUser(t, "free@example.com")
	_, proToken := ts.createUser(t, "pro@example.com")
	pro, err := ts.store.GetUserByEmail(context.Background(), "pro@example.com")
	require.NoError(t, err)
	subscription := domain.SubscriptionPro
	_, err = ts.services.Users.UpdateUser(context.Background(), ts.admin.Session(), pro.ID, service.UpdateUserRequest{
		Subscription: &subscription,
	})
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    []any
		page       int
		wantPrompt bool
	}{
		{"anonymous page 2", nil, 2, false},
		{"anonymous page 3", nil, 3, true},
		{"free page 3", []any{bearer(freeToken)}, 3, true},
		{"free page 4 is served without prompt", []any{bearer(freeToken)}, 4, false},
		{"pro page 3", []any{bearer(proToken)}, 3, false},
		{"admin page 3", []any{bearer(ts.adminToken)}, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Get(fmt.Sprintf("/api/v1/gallery/dashboard?page=%d", tt.page), tt.headers...)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

			envelope := decode[ListingResponse](t, resp)
			assert.True(t, envelope.Data.Access.Serve)
			assert.Equal(t, tt.wantPrompt, envelope.Data.Access.ShowUpgradePrompt)
			assert.Equal(t, 30, envelope.Data.Pagination.TotalItems)
			assert.Equal(t, 3, envelope.Data.Pagination.TotalPages)
		})
	}

	resp := ts.api.Get("/api/v1/gallery/dashboard?page=3")
	assert.Len(t, decode[ListingResponse](t, resp).Data.Items, 6)
}

func TestListGallery_InvalidQuery(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{"unknown variant", "/api/v1/gallery/poster"},
		{"font on sections", "/api/v1/gallery/section?font=Inter"},
		{"layout on websites", "/api/v1/gallery/website?layout=Grid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Get(tt.path)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, "VALIDATION", decode[any](t, resp).Code)
		})
	}
}

func TestListGallery_InvalidTokenStaysAnonymous(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/gallery/website?page=3", bearer("v4.local.garbage"))
	require.Equal(t, http.StatusOK, resp.Code)
	assert.True(t, decode[ListingResponse](t, resp).Data.Access.ShowUpgradePrompt)
}

func TestGetGalleryItem(t *testing.T) {
	ts := setupTestServer(t)

	onboarding := ts.createTag(t, domain.AxisCategory, "Onboarding", domain.VariantFlow)
	flow, err := ts.services.Content.Create(context.Background(), ts.admin.Session(), "flow", service.ItemInput{
		Title:       "Signup flow",
		Description: "Three steps from landing to dashboard.",
		Screenshots: []string{"/uploads/1.png", "/uploads/2.png", "/uploads/3.png"},
		Tags:        domain.TagSet{domain.AxisCategory: {onboarding.ID}},
	})
	require.NoError(t, err)

	resp := ts.api.Get("/api/v1/gallery/flow/" + flow.ID)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decode[domain.Detail](t, resp)
	assert.Equal(t, []string{"/uploads/1.png", "/uploads/2.png", "/uploads/3.png"}, envelope.Data.Screenshots)
	assert.Equal(t, 3, envelope.Data.ScreenshotCount)
	assert.Equal(t, []string{"Onboarding"}, envelope.Data.Tags[domain.AxisCategory])

	t.Run("missing", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/gallery/flow/flw-missing")
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "NOT_FOUND", decode[any](t, resp).Code)
	})

	t.Run("wrong variant", func(t *testing.T) {
		resp := ts.api.Get("/api/v1/gallery/website/" + flow.ID)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestListFilters(t *testing.T) {
	ts := setupTestServer(t)

	ts.createTag(t, domain.AxisCategory, "SaaS", domain.VariantWebsite)
	ts.createTag(t, domain.AxisCategory, "Hero", domain.VariantSection)
	ts.createTag(t, domain.AxisFont, "Inter", "")

	resp := ts.api.Get("/api/v1/filters?type=website")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decode[service.FilterOptions](t, resp)
	require.Len(t, envelope.Data.Categories, 1)
	assert.Equal(t, "SaaS", envelope.Data.Categories[0].Name)
	require.Len(t, envelope.Data.Fonts, 1)
	assert.NotNil(t, envelope.Data.Colors)
	assert.NotNil(t, envelope.Data.LayoutTypes)

	resp = ts.api.Get("/api/v1/filters")
	assert.Len(t, decode[service.FilterOptions](t, resp).Data.Categories, 2)

	resp = ts.api.Get("/api/v1/filters?type=poster")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
