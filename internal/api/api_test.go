package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/shotgallery/gallery-server/internal/auth"
	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/service"
	"github.com/shotgallery/gallery-server/internal/store/sqlite"
	"github.com/shotgallery/gallery-server/internal/upload"
	"github.com/shotgallery/gallery-server/internal/validation"
)

// testEnvelope mirrors the response envelope with a typed payload.
type testEnvelope[T any] struct {
	Version int               `json:"v"`
	Success bool              `json:"success"`
	Data    T                 `json:"data"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// cheapParams keep password hashing fast in tests.
var cheapParams = auth.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api        humatest.TestAPI
	store      *sqlite.Store
	tokens     *auth.TokenService
	uploadsDir string

	admin      *domain.User
	adminToken string
}

// setupTestServer creates a server over a fresh database with one admin.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewTokenService(make([]byte, 32), time.Hour)
	require.NoError(t, err)

	uploads, err := upload.NewLocalStore(filepath.Join(tmpDir, "uploads"))
	require.NoError(t, err)

	v := validation.New()
	services := &Services{
		Gallery:  service.NewGalleryService(st, time.Second, logger),
		Taxonomy: service.NewTaxonomyService(st, v, time.Second, logger),
		Content:  service.NewContentService(st, v, time.Second, logger),
		Auth:     service.NewAuthService(st, tokens, auth.NewHasher(cheapParams), v, time.Second, logger),
		Users:    service.NewUserService(st, time.Second, logger),
		Upload:   service.NewUploadService(uploads, 1<<20, logger),
	}

	s := NewServer(st, services, Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		UploadsDir:     uploads.Dir(),
	}, logger)
	t.Cleanup(s.Stop)

	ctx := context.Background()
	_, err = services.Auth.EnsureAdmin(ctx, "admin@example.com", "supersecret")
	require.NoError(t, err)
	admin, err := st.GetUserByEmail(ctx, "admin@example.com")
	require.NoError(t, err)

	ts := &testServer{
		Server:     s,
		api:        humatest.Wrap(t, s.api),
		store:      st,
		tokens:     tokens,
		uploadsDir: uploads.Dir(),
		admin:      admin,
	}
	ts.adminToken = ts.tokenFor(t, admin)
	return ts
}

// tokenFor issues a token directly, so tests do not spend the login rate limit.
func (ts *testServer) tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()
	token, _, err := ts.tokens.GenerateAccessToken(user)
	require.NoError(t, err)
	return token
}

func bearer(token string) string {
	return "Authorization: Bearer " + token
}

// createUser signs up a free user through the service and returns it with a token.
func (ts *testServer) createUser(t *testing.T, email string) (*domain.User, string) {
	t.Helper()
	resp, err := ts.services.Auth.Signup(context.Background(), service.SignupRequest{
		Email: email, Password: "password123", Name: "Visitor",
	})
	require.NoError(t, err)
	return resp.User, resp.AccessToken
}

func (ts *testServer) createTag(t *testing.T, axis domain.Axis, name string, categoryType domain.Variant) *domain.Tag {
	t.Helper()
	tag, err := ts.services.Taxonomy.Create(context.Background(), ts.admin.Session(), string(axis), service.TagInput{
		Name: name,
		Type: string(categoryType),
	})
	require.NoError(t, err)
	return tag
}

func (ts *testServer) createItem(t *testing.T, v domain.Variant, title string, tags domain.TagSet) *domain.Item {
	t.Helper()
	item, err := ts.services.Content.Create(context.Background(), ts.admin.Session(), string(v), service.ItemInput{
		Title:       title,
		Description: "A description long enough to pass validation.",
		Screenshots: []string{"/uploads/" + title + ".png"},
		Tags:        tags,
	})
	require.NoError(t, err)
	return item
}

// decode unmarshals an enveloped response body.
func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()
	var envelope testEnvelope[T]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope), resp.Body.String())
	return envelope
}
