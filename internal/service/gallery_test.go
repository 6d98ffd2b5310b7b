package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/store"
)

func TestGalleryService_List_FilterScenario(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	saas := env.tag(t, domain.AxisCategory, "SaaS", domain.VariantWebsite)
	other := env.tag(t, domain.AxisCategory, "Agency", domain.VariantWebsite)
	blue := env.tag(t, domain.AxisColor, "Blue", "")
	green := env.tag(t, domain.AxisColor, "Green", "")

	w1 := env.item(t, domain.VariantWebsite, "first", domain.TagSet{
		domain.AxisCategory: {saas.ID}, domain.AxisColor: {blue.ID},
	})
	w2 := env.item(t, domain.VariantWebsite, "second", domain.TagSet{
		domain.AxisCategory: {saas.ID}, domain.AxisColor: {blue.ID, green.ID},
	})
	env.item(t, domain.VariantWebsite, "third", domain.TagSet{
		domain.AxisCategory: {other.ID}, domain.AxisColor: {blue.ID},
	})

	listing, err := env.gallery.List(ctx, nil, store.ListQuery{
		Variant: domain.VariantWebsite,
		Filters: map[domain.Axis]string{domain.AxisCategory: "SaaS", domain.AxisColor: "Blue"},
	})
	require.NoError(t, err)
	require.False(t, listing.Unavailable)
	assert.Equal(t, 2, listing.Page.TotalItems)
	require.Len(t, listing.Page.Items, 2)
	assert.Equal(t, w2.ID, listing.Page.Items[0].ID, "newest first")
	assert.Equal(t, w1.ID, listing.Page.Items[1].ID)

	listing, err = env.gallery.List(ctx, nil, store.ListQuery{
		Variant: domain.VariantWebsite,
		Filters: map[domain.Axis]string{domain.AxisCategory: "SaaS", domain.AxisColor: "Green"},
	})
	require.NoError(t, err)
	require.Len(t, listing.Page.Items, 1)
	assert.Equal(t, w2.ID, listing.Page.Items[0].ID)
}

func TestGalleryService_List_NormalizesFilterValues(t *testing.T) {
	env := setupTest(t)
	cat := env.tag(t, domain.AxisCategory, "Landing  Page", domain.VariantSection)
	env.item(t, domain.VariantSection, "hero", domain.TagSet{domain.AxisCategory: {cat.ID}})

	assert.Equal(t, "Landing Page", cat.Name)

	listing, err := env.gallery.List(context.Background(), nil, store.ListQuery{
		Variant: domain.VariantSection,
		Filters: map[domain.Axis]string{domain.AxisCategory: "  Landing Page "},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, listing.Page.TotalItems)

	listing, err = env.gallery.List(context.Background(), nil, store.ListQuery{
		Variant: domain.VariantSection,
		Filters: map[domain.Axis]string{domain.AxisCategory: "landing page"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, listing.Page.TotalItems, "matching is case-sensitive")
}

func TestGalleryService_List_UpgradePrompt(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	cat := env.tag(t, domain.AxisCategory, "Analytics", domain.VariantDashboard)
	for i := 0; i < 30; i++ {
		env.item(t, domain.VariantDashboard, fmt.Sprintf("dash-%02d", i), domain.TagSet{domain.AxisCategory: {cat.ID}})
	}

	free := env.signup(t, "free@example.com").Session()
	pro := &domain.Session{UserID: "usr-pro", Role: domain.RoleUser, Subscription: domain.SubscriptionPro}

	tests := []struct {
		name       string
		session    *domain.Session
		page       int
		wantPrompt bool
		wantItems  int
	}{
		{"anonymous page 1", nil, 1, false, 12},
		{"anonymous page 3", nil, 3, true, 6},
		{"free page 3", free, 3, true, 6},
		{"free page 4 is served without prompt", free, 4, false, 0},
		{"pro page 3", pro, 3, false, 6},
		{"admin page 3", env.admin, 3, false, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing, err := env.gallery.List(ctx, tt.session, store.ListQuery{Variant: domain.VariantDashboard, Page: tt.page})
			require.NoError(t, err)
			assert.True(t, listing.Access.Serve)
			assert.Equal(t, tt.wantPrompt, listing.Access.ShowUpgradePrompt)
			assert.Len(t, listing.Page.Items, tt.wantItems)
			assert.Equal(t, 30, listing.Page.TotalItems)
			assert.Equal(t, 3, listing.Page.TotalPages)
		})
	}
}

func TestGalleryService_List_InvalidQuery(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, err := env.gallery.List(ctx, nil, store.ListQuery{Variant: "poster"})
	assertCode(t, err, domainerrors.CodeValidation)

	_, err = env.gallery.List(ctx, nil, store.ListQuery{
		Variant: domain.VariantSection,
		Filters: map[domain.Axis]string{domain.AxisFont: "Inter"},
	})
	derr := assertCode(t, err, domainerrors.CodeValidation)
	assert.Contains(t, derr.Details, "font")

	_, err = env.gallery.List(ctx, nil, store.ListQuery{
		Variant: domain.VariantWebsite,
		Filters: map[domain.Axis]string{domain.AxisCategory: "   "},
	})
	assertCode(t, err, domainerrors.CodeValidation)
}

func TestGalleryService_List_DegradesWhenStorageFails(t *testing.T) {
	env := setupTest(t)
	svc := NewGalleryService(failingStore{Store: env.store, err: errors.New("disk I/O error")}, 0, testLogger)

	listing, err := svc.List(context.Background(), nil, store.ListQuery{Variant: domain.VariantWebsite, Page: 3})
	require.NoError(t, err)
	assert.True(t, listing.Unavailable)
	assert.NotNil(t, listing.Page.Items)
	assert.Empty(t, listing.Page.Items)
	assert.Equal(t, 0, listing.Page.TotalItems)
	assert.Equal(t, 3, listing.Page.Page)
	assert.True(t, listing.Access.ShowUpgradePrompt)
}

func TestGalleryService_Detail(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	cat := env.tag(t, domain.AxisCategory, "Onboarding", domain.VariantFlow)
	flow := env.item(t, domain.VariantFlow, "signup", domain.TagSet{domain.AxisCategory: {cat.ID}},
		"/uploads/a.png", "/uploads/b.png", "/uploads/c.png")

	detail, err := env.gallery.Detail(ctx, "flow", flow.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.ScreenshotCount)
	assert.Equal(t, []string{"/uploads/a.png", "/uploads/b.png", "/uploads/c.png"}, detail.Screenshots)
	assert.Equal(t, []string{"Onboarding"}, detail.Tags[domain.AxisCategory])

	_, err = env.gallery.Detail(ctx, "flow", "flw-missing")
	assertCode(t, err, domainerrors.CodeNotFound)

	_, err = env.gallery.Detail(ctx, "website", flow.ID)
	assertCode(t, err, domainerrors.CodeNotFound)

	_, err = env.gallery.Detail(ctx, "poster", flow.ID)
	assertCode(t, err, domainerrors.CodeValidation)

	failing := NewGalleryService(failingStore{Store: env.store, err: errors.New("boom")}, 0, testLogger)
	_, err = failing.Detail(ctx, "flow", flow.ID)
	assertCode(t, err, domainerrors.CodeUnavailable)
}

func TestGalleryService_FilterOptions(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	env.tag(t, domain.AxisCategory, "SaaS", domain.VariantWebsite)
	env.tag(t, domain.AxisCategory, "Hero", domain.VariantSection)
	env.tag(t, domain.AxisFont, "Inter", "")
	env.tag(t, domain.AxisLayout, "Sidebar", "")

	all, err := env.gallery.FilterOptions(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all.Categories, 2)
	assert.Len(t, all.Fonts, 1)
	assert.NotNil(t, all.Colors)
	assert.Empty(t, all.Colors)
	assert.Len(t, all.LayoutTypes, 1)

	sections, err := env.gallery.FilterOptions(ctx, "section")
	require.NoError(t, err)
	require.Len(t, sections.Categories, 1)
	assert.Equal(t, "Hero", sections.Categories[0].Name)
	assert.Len(t, sections.Fonts, 1, "only categories are scoped")

	_, err = env.gallery.FilterOptions(ctx, "poster")
	assertCode(t, err, domainerrors.CodeValidation)

	failing := NewGalleryService(failingStore{Store: env.store, err: errors.New("boom")}, 0, testLogger)
	_, err = failing.FilterOptions(ctx, "")
	assertCode(t, err, domainerrors.CodeUnavailable)
}
