package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariant_Supports(t *testing.T) {
	tests := []struct {
		variant Variant
		axis    Axis
		want    bool
	}{
		{VariantWebsite, AxisCategory, true},
		{VariantWebsite, AxisFont, true},
		{VariantWebsite, AxisColor, true},
		{VariantWebsite, AxisLayout, false},
		{VariantSection, AxisCategory, true},
		{VariantSection, AxisFont, false},
		{VariantSection, AxisColor, false},
		{VariantSection, AxisLayout, false},
		{VariantDashboard, AxisCategory, true},
		{VariantDashboard, AxisFont, false},
		{VariantDashboard, AxisColor, true},
		{VariantDashboard, AxisLayout, true},
		{VariantFlow, AxisCategory, true},
		{VariantFlow, AxisFont, false},
		{VariantFlow, AxisColor, false},
		{VariantFlow, AxisLayout, false},
		{Variant("podcast"), AxisCategory, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.variant)+"/"+string(tt.axis), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.variant.Supports(tt.axis))
		})
	}
}

func TestVariant_Axes(t *testing.T) {
	assert.Equal(t, []Axis{AxisCategory, AxisFont, AxisColor}, VariantWebsite.Axes())
	assert.Equal(t, []Axis{AxisCategory}, VariantSection.Axes())
	assert.Equal(t, []Axis{AxisCategory, AxisColor, AxisLayout}, VariantDashboard.Axes())
	assert.Equal(t, []Axis{AxisCategory}, VariantFlow.Axes())
	assert.Nil(t, Variant("nope").Axes())

	// Returned slices must not alias the matrix.
	axes := VariantWebsite.Axes()
	axes[0] = AxisLayout
	assert.Equal(t, AxisCategory, VariantWebsite.Axes()[0])
}

func TestParseVariant(t *testing.T) {
	for _, v := range Variants() {
		got, err := ParseVariant(string(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := ParseVariant("Website")
	assert.Error(t, err)
	_, err = ParseVariant("")
	assert.Error(t, err)
}

func TestParseAxis(t *testing.T) {
	for _, a := range Axes() {
		got, err := ParseAxis(string(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	_, err := ParseAxis("layout_type")
	assert.Error(t, err)
}

func TestVariant_MultiScreenshot(t *testing.T) {
	assert.True(t, VariantFlow.MultiScreenshot())
	assert.False(t, VariantWebsite.MultiScreenshot())
	assert.False(t, VariantSection.MultiScreenshot())
	assert.False(t, VariantDashboard.MultiScreenshot())
}
