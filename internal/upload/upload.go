// Package upload stores admin-uploaded screenshots and hands back the reference
// that content records point at.
package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrUnsupportedType is returned when data is not one of the accepted image formats.
var ErrUnsupportedType = errors.New("unsupported image format")

// Store persists an uploaded object and returns the reference clients use to load it.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// NewKey returns a fresh object key for content of the given type, "<uuid>.<ext>".
func NewKey(contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}
	return uuid.NewString() + "." + ext, nil
}

// DetectImageType checks magic bytes to determine image format.
// Returns empty string if not a recognized image format.
func DetectImageType(data []byte) string {
	if len(data) < 8 {
		return ""
	}

	// JPEG: starts with FF D8 FF
	if data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "image/jpeg"
	}

	// PNG: 89 50 4E 47 0D 0A 1A 0A
	if data[0] == 0x89 && data[1] == 'P' && data[2] == 'N' && data[3] == 'G' &&
		data[4] == 0x0D && data[5] == 0x0A && data[6] == 0x1A && data[7] == 0x0A {
		return "image/png"
	}

	// GIF87a or GIF89a
	if string(data[:4]) == "GIF8" && (data[4] == '7' || data[4] == '9') && data[5] == 'a' {
		return "image/gif"
	}

	// WebP: RIFF....WEBP
	if len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP" {
		return "image/webp"
	}

	return ""
}
