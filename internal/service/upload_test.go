package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shotgallery/gallery-server/internal/domain"
	domainerrors "github.com/shotgallery/gallery-server/internal/errors"
)

type memUploads struct {
	keys  []string
	types []string
	err   error
}

func (m *memUploads) Put(_ context.Context, key, contentType string, _ []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.keys = append(m.keys, key)
	m.types = append(m.types, contentType)
	return "/uploads/" + key, nil
}

var (
	adminSession = &domain.Session{UserID: "usr-admin", Role: domain.RoleAdmin}
	pngBytes     = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, bytes.Repeat([]byte{0}, 64)...)
)

func TestUploadService_Save(t *testing.T) {
	mem := &memUploads{}
	svc := NewUploadService(mem, 1024, testLogger)

	ref, err := svc.Save(context.Background(), adminSession, "shot.png", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	require.Len(t, mem.keys, 1)
	assert.Equal(t, "/uploads/"+mem.keys[0], ref)
	assert.True(t, strings.HasSuffix(mem.keys[0], ".png"))
	assert.Equal(t, "image/png", mem.types[0])
}

func TestUploadService_Rejects(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		session *domain.Session
		data    []byte
		max     int64
		code    domainerrors.Code
	}{
		{"anonymous", nil, pngBytes, 1024, domainerrors.CodeForbidden},
		{"member", &domain.Session{UserID: "usr-1", Role: domain.RoleUser}, pngBytes, 1024, domainerrors.CodeForbidden},
		{"empty", adminSession, nil, 1024, domainerrors.CodeValidation},
		{"not an image", adminSession, []byte("%PDF-1.7 not an image at all"), 1024, domainerrors.CodeValidation},
		{"too large", adminSession, pngBytes, 16, domainerrors.CodeTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := &memUploads{}
			svc := NewUploadService(mem, tt.max, testLogger)
			_, err := svc.Save(ctx, tt.session, "file", bytes.NewReader(tt.data))
			assertCode(t, err, tt.code)
			assert.Empty(t, mem.keys)
		})
	}
}

func TestUploadService_StoreFailure(t *testing.T) {
	svc := NewUploadService(&memUploads{err: errors.New("bucket gone")}, 1024, testLogger)
	_, err := svc.Save(context.Background(), adminSession, "shot.png", bytes.NewReader(pngBytes))
	assertCode(t, err, domainerrors.CodeUnavailable)
}
