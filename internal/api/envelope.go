package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shotgallery/gallery-server/internal/http/response"
)

// EnvelopeTransformer wraps every huma response body in the shared response
// envelope. Errors become {success: false, error, code, message, details}.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case response.Envelope, *response.Envelope:
		return v, nil
	case *APIError:
		code := body.Code
		if code == "" {
			n, _ := strconv.Atoi(status)
			code = response.StatusCode(n)
		}
		return response.Failure(code, body.Message, body.Details), nil
	default:
		return response.Wrap(v), nil
	}
}
