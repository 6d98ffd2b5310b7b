package service

import (
	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
)

// RequireAdmin rejects every caller that is not an admin with the same error,
// whether anonymous or signed in. Call it before touching the store so a
// rejected caller learns nothing about which resources exist.
func RequireAdmin(session *domain.Session) error {
	if !session.IsAdmin() {
		return domainerrors.Forbidden("admin access required")
	}
	return nil
}
