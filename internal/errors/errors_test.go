package errors_test

import (
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := map[domainerrors.Code]int{
		domainerrors.CodeNotFound:           http.StatusNotFound,
		domainerrors.CodeAlreadyExists:      http.StatusConflict,
		domainerrors.CodeConflict:           http.StatusConflict,
		domainerrors.CodeUnauthorized:       http.StatusUnauthorized,
		domainerrors.CodeInvalidCredentials: http.StatusUnauthorized,
		domainerrors.CodeForbidden:          http.StatusForbidden,
		domainerrors.CodeValidation:         http.StatusBadRequest,
		domainerrors.CodeTooLarge:           http.StatusRequestEntityTooLarge,
		domainerrors.CodeUnavailable:        http.StatusServiceUnavailable,
		domainerrors.CodeInternal:           http.StatusInternalServerError,
		domainerrors.Code("SOMETHING_ELSE"): http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, code.HTTPStatus(), code)
	}
}

func TestError_IsMatchesByCode(t *testing.T) {
	err := domainerrors.NotFoundf("website %s not found", "web-1")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.NotErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Equal(t, "website web-1 not found", err.Error())
}

func TestUnavailable_HidesCauseFromMessage(t *testing.T) {
	err := domainerrors.Unavailable(io.ErrUnexpectedEOF)

	assert.Equal(t, "service temporarily unavailable", err.Message)
	assert.ErrorIs(t, err, domainerrors.ErrUnavailable)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, http.StatusServiceUnavailable, err.HTTPStatus())
}

func TestWithDetails(t *testing.T) {
	base := domainerrors.Validation("validation failed")
	detailed := base.WithDetails(map[string]string{"title": "is required"})

	assert.Nil(t, base.Details)
	assert.Equal(t, map[string]string{"title": "is required"}, detailed.Details)
	assert.Equal(t, domainerrors.CodeValidation, detailed.Code)
}

func TestWrap(t *testing.T) {
	cause := errors.New("disk full")
	err := domainerrors.Wrapf(cause, domainerrors.CodeInternal, "save %s", "file")

	assert.Equal(t, "save file: disk full", err.Error())
	assert.Same(t, cause, errors.Unwrap(err))
}
