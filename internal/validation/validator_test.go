package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/validation"
)

type itemRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Type        string   `json:"type" validate:"required,variant"`
	Screenshots []string `json:"screenshot_urls" validate:"required,min=1,dive,screenshot"`
	HexCode     string   `json:"hex_code,omitempty" validate:"omitempty,hexrgb"`
	Email       string   `json:"email,omitempty" validate:"omitempty,email"`
}

func validRequest() itemRequest {
	return itemRequest{
		Title:       "Acme",
		Type:        "website",
		Screenshots: []string{"https://cdn.example.com/a.png", "/uploads/b.png"},
	}
}

func details(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
	d, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	return d
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()
	req := validRequest()
	req.HexCode = "#3B82F6"
	assert.NoError(t, v.Validate(req))
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		mutate    func(r *itemRequest)
		wantField string
		wantMsg   string
	}{
		{"short title", func(r *itemRequest) { r.Title = "ab" }, "title", "must be at least 3 characters"},
		{"unknown type", func(r *itemRequest) { r.Type = "poster" }, "type", "must be one of: website section dashboard flow"},
		{"no screenshots", func(r *itemRequest) { r.Screenshots = []string{} }, "screenshot_urls", "must contain at least 1 item(s)"},
		{"bad screenshot", func(r *itemRequest) { r.Screenshots = []string{"/a.png", "ftp://x/y.png"} }, "screenshot_urls[0]", "must be an http(s) URL or an /uploads/ path"},
		{"short hex", func(r *itemRequest) { r.HexCode = "#FFF" }, "hex_code", "must be a hex color like #3B82F6"},
		{"bad email", func(r *itemRequest) { r.Email = "nope" }, "email", "must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			d := details(t, v.Validate(req))
			assert.Equal(t, tt.wantMsg, d[tt.wantField], "details: %v", d)
		})
	}
}

func TestIsScreenshotRef(t *testing.T) {
	tests := map[string]bool{
		"https://cdn.example.com/a.png": true,
		"http://localhost:8080/x.webp":  true,
		"/uploads/abc.png":              true,
		"/uploads/":                     false,
		"/uploads/../etc/passwd":        false,
		"/static/a.png":                 false,
		"https://":                      false,
		"javascript:alert(1)":           false,
		"":                              false,
	}
	for in, want := range tests {
		assert.Equal(t, want, validation.IsScreenshotRef(in), in)
	}
}
