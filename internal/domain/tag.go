package domain

import "time"

// Tag is a taxonomy entry: a Category, Font, Color or LayoutType.
// All four share one shape; Axis says which table it lives in.
type Tag struct {
	ID   string `json:"id"`
	Axis Axis   `json:"axis"`
	Name string `json:"name"`

	// CategoryType restricts which variant a category may tag. Set only when Axis is AxisCategory.
	CategoryType Variant `json:"type,omitempty"`

	// HexCode is an optional display color, e.g. "#3B82F6". Only used when Axis is AxisColor.
	HexCode string `json:"hex_code,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// CanTag reports whether this tag may be attached to content of variant v.
// The axis must be valid for v and categories must be typed for v.
func (t *Tag) CanTag(v Variant) bool {
	if !v.Supports(t.Axis) {
		return false
	}
	if t.Axis == AxisCategory {
		return t.CategoryType == v
	}
	return true
}

// TagSet holds tag ids per axis, as supplied by admin write paths or read back
// from the association tables.
type TagSet map[Axis][]string

// IDs returns the ids on axis a with duplicates removed, preserving first occurrence order.
func (ts TagSet) IDs(a Axis) []string {
	ids := ts[a]
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
