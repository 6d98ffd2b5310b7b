package api

import (
	"errors"
	"net/http"

	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/http/response"
	"github.com/shotgallery/gallery-server/internal/logger"
)

// UploadResponse is the reference to store in a content item's screenshot list.
type UploadResponse struct {
	URL string `json:"url"`
}

// handleUpload accepts one image in the multipart field "file".
// It is a plain chi handler so the body can be bounded before parsing.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx, s.logger)
	uploads := s.services.Upload

	// Reject non-admins before reading the body.
	if !getSession(ctx).IsAdmin() {
		response.HandleError(w, domainerrors.Forbidden("admin access required"), log)
		return
	}

	// Leave room for the multipart framing around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, uploads.MaxBytes()+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.HandleError(w, domainerrors.TooLarge("file too large"), log)
			return
		}
		response.BadRequest(w, "expected a multipart form with a file field", log)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		response.HandleError(w, domainerrors.Validation("no file uploaded"), log)
		return
	}
	defer file.Close()

	ref, err := uploads.Save(ctx, getSession(ctx), header.Filename, file)
	if err != nil {
		response.HandleError(w, err, log)
		return
	}

	response.Created(w, UploadResponse{URL: ref}, log)
}
