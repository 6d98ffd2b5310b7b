package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/logger"
	"github.com/shotgallery/gallery-server/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const (
	sessionKey ctxKey = "session"
	userKey    ctxKey = "user"
)

// withCaller stores the resolved session and user in ctx.
func withCaller(ctx context.Context, session *domain.Session, user *domain.User) context.Context {
	ctx = context.WithValue(ctx, sessionKey, session)
	return context.WithValue(ctx, userKey, user)
}

// getSession returns the caller's session, or nil for an anonymous visitor.
func getSession(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(sessionKey).(*domain.Session)
	return session
}

// RequireUser returns the authenticated user from context.
// Returns 401 if the request carried no valid token.
func RequireUser(ctx context.Context) (*domain.User, error) {
	user, ok := ctx.Value(userKey).(*domain.User)
	if !ok || user == nil {
		return nil, domainerrors.Unauthorized("authentication required")
	}
	return user, nil
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authMiddleware returns a middleware that validates Bearer tokens and stores
// the caller's session in context. A missing or invalid token leaves the
// request anonymous; handlers decide whether that is enough.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			session, user, err := auth.ResolveSession(r.Context(), token)
			if err != nil {
				logger.FromContext(r.Context(), slog.Default()).Debug("ignoring bearer token", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withCaller(r.Context(), session, user)))
		})
	}
}
