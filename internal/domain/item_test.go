package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestItem_Thumbnail(t *testing.T) {
	flow := &Item{
		Variant:     VariantFlow,
		Screenshots: []string{"/uploads/step-1.png", "/uploads/step-2.png", "/uploads/step-3.png"},
	}
	assert.Equal(t, "/uploads/step-1.png", flow.Thumbnail())

	empty := &Item{}
	assert.Empty(t, empty.Thumbnail())
}

func TestItem_Summary(t *testing.T) {
	now := time.Now()
	item := &Item{
		ID:          "web-1",
		Variant:     VariantWebsite,
		Title:       "Acme",
		Description: "Marketing site for Acme",
		Screenshots: []string{"https://cdn.example.com/acme.png"},
		WebsiteURL:  "https://acme.example.com",
		CreatedAt:   now,
	}

	s := item.Summary()
	assert.Equal(t, "web-1", s.ID)
	assert.Equal(t, VariantWebsite, s.Variant)
	assert.Equal(t, "https://cdn.example.com/acme.png", s.Thumbnail)
	assert.Equal(t, "https://acme.example.com", s.WebsiteURL)
	assert.Equal(t, now, s.CreatedAt)
}

func TestNewDetail(t *testing.T) {
	item := &Item{
		ID:          "dsh-1",
		Variant:     VariantDashboard,
		Screenshots: []string{"/uploads/a.png"},
	}

	d := NewDetail(item, map[Axis][]string{AxisCategory: {"Analytics"}})

	assert.Equal(t, []string{"Analytics"}, d.Tags[AxisCategory])
	assert.Equal(t, []string{}, d.Tags[AxisColor])
	assert.Equal(t, []string{}, d.Tags[AxisLayout])
	_, hasFont := d.Tags[AxisFont]
	assert.False(t, hasFont, "font is not a dashboard axis")
	assert.Equal(t, 1, d.ScreenshotCount)
}
