package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shotgallery/gallery-server/internal/domain"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for i := 0; i < count; i++ {
		id, err := Generate("test")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	id, err := Generate(PrefixUser)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(id, "usr-"))
	// nanoid default length is 21
	assert.Len(t, id, len("usr-")+21)
}

func TestForVariant(t *testing.T) {
	want := map[domain.Variant]string{
		domain.VariantWebsite:   "web-",
		domain.VariantSection:   "sec-",
		domain.VariantDashboard: "dsh-",
		domain.VariantFlow:      "flw-",
	}

	for v, prefix := range want {
		id, err := ForVariant(v)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(id, prefix), "%s: %s", v, id)
	}

	_, err := ForVariant("podcast")
	assert.Error(t, err)
}

func TestForAxis(t *testing.T) {
	id, err := ForAxis(domain.AxisLayout)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "lay-"))

	_, err = ForAxis("mood")
	assert.Error(t, err)
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		id := MustGenerate("tok")
		assert.True(t, strings.HasPrefix(id, "tok-"))
	})
}
