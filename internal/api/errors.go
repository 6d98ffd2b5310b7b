package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
	"github.com/shotgallery/gallery-server/internal/http/response"
)

// APIError is a custom error type that implements huma.StatusError.
// It maps domain errors to HTTP responses with consistent structure.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to use domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = newAPIError
}

func newAPIError(status int, message string, errs ...error) huma.StatusError {
	var fields map[string]string
	for _, err := range errs {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return fromDomainError(domainErr)
		}

		// Request validation failures from huma carry one detail per field.
		var detailer huma.ErrorDetailer
		if errors.As(err, &detailer) {
			detail := detailer.ErrorDetail()
			if fields == nil {
				fields = make(map[string]string)
			}
			fields[detail.Location] = detail.Message
		}
	}

	// Validation is a 400 everywhere in this API.
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		message = "internal server error"
	}

	apiErr := &APIError{
		status:  status,
		Code:    response.StatusCode(status),
		Message: message,
	}
	if fields != nil {
		apiErr.Details = fields
	}
	return apiErr
}

func fromDomainError(err *domainerrors.Error) *APIError {
	return &APIError{
		status:  err.HTTPStatus(),
		Code:    string(err.Code),
		Message: err.Message,
		Details: err.Details,
	}
}
