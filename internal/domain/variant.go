package domain

import "fmt"

// Variant identifies one of the four kinds of gallery content.
type Variant string

const (
	// VariantWebsite is a full website screenshot.
	VariantWebsite Variant = "website"
	// VariantSection is a single page section (hero, pricing, ...).
	VariantSection Variant = "section"
	// VariantDashboard is an application dashboard screenshot.
	VariantDashboard Variant = "dashboard"
	// VariantFlow is an ordered multi-step flow.
	VariantFlow Variant = "flow"
)

// Axis identifies a taxonomy kind that content can be tagged and filtered by.
// The string value doubles as the filter query parameter name.
type Axis string

const (
	// AxisCategory tags content with a Category whose type matches the variant.
	AxisCategory Axis = "category"
	// AxisFont tags content with a Font.
	AxisFont Axis = "font"
	// AxisColor tags content with a Color.
	AxisColor Axis = "color"
	// AxisLayout tags content with a LayoutType.
	AxisLayout Axis = "layout"
)

// variantAxes is the association matrix: which taxonomy axes each variant may
// be tagged with. Everything that branches on variant capability reads this
// table instead of switching on the variant.
var variantAxes = map[Variant][]Axis{
	VariantWebsite:   {AxisCategory, AxisFont, AxisColor},
	VariantSection:   {AxisCategory},
	VariantDashboard: {AxisCategory, AxisColor, AxisLayout},
	VariantFlow:      {AxisCategory},
}

var (
	allVariants = []Variant{VariantWebsite, VariantSection, VariantDashboard, VariantFlow}
	allAxes     = []Axis{AxisCategory, AxisFont, AxisColor, AxisLayout}
)

// Variants returns every content variant in a stable order.
func Variants() []Variant {
	out := make([]Variant, len(allVariants))
	copy(out, allVariants)
	return out
}

// Axes returns every taxonomy axis in a stable order.
func Axes() []Axis {
	out := make([]Axis, len(allAxes))
	copy(out, allAxes)
	return out
}

// ParseVariant converts a string to a Variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown content type %q", s)
	}
	return v, nil
}

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	_, ok := variantAxes[v]
	return ok
}

// Axes returns the axes valid for this variant, in matrix order.
// Returns nil for an unknown variant.
func (v Variant) Axes() []Axis {
	axes := variantAxes[v]
	if axes == nil {
		return nil
	}
	out := make([]Axis, len(axes))
	copy(out, axes)
	return out
}

// Supports reports whether content of this variant may carry tags on axis a.
func (v Variant) Supports(a Axis) bool {
	for _, axis := range variantAxes[v] {
		if axis == a {
			return true
		}
	}
	return false
}

// MultiScreenshot reports whether the variant stores an ordered screenshot list
// rather than a single screenshot.
func (v Variant) MultiScreenshot() bool {
	return v == VariantFlow
}

// ParseAxis converts a string to an Axis.
func ParseAxis(s string) (Axis, error) {
	a := Axis(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown taxonomy axis %q", s)
	}
	return a, nil
}

// Valid reports whether a is one of the known axes.
func (a Axis) Valid() bool {
	switch a {
	case AxisCategory, AxisFont, AxisColor, AxisLayout:
		return true
	}
	return false
}
