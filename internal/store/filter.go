package store

import (
	"sort"

	"github.com/shotgallery/gallery-server/internal/domain"
)

// ListQuery is the declarative description of a listing request.
// It is validated against the variant's axes before any SQL is built.
type ListQuery struct {
	Variant domain.Variant
	Page    int
	Filters map[domain.Axis]string // axis -> exact tag name
}

// Validate rejects unknown variants, axes the variant cannot be tagged with,
// and empty filter values. The page is normalized in place.
func (q *ListQuery) Validate() error {
	if !q.Variant.Valid() {
		return Invalid("type", "unknown content type %q", q.Variant)
	}
	for axis, value := range q.Filters {
		if !axis.Valid() {
			return Invalid(string(axis), "unknown filter")
		}
		if !q.Variant.Supports(axis) {
			return Invalid(string(axis), "not a valid filter for %s", q.Variant)
		}
		if value == "" {
			return Invalid(string(axis), "filter value cannot be empty")
		}
	}
	q.Page = domain.NormalizePage(q.Page)
	return nil
}

// SortedAxes returns the filtered axes in a deterministic order so that the
// generated SQL (and its argument list) is stable.
func (q *ListQuery) SortedAxes() []domain.Axis {
	axes := make([]domain.Axis, 0, len(q.Filters))
	for axis := range q.Filters {
		axes = append(axes, axis)
	}
	sort.Slice(axes, func(i, j int) bool { return axes[i] < axes[j] })
	return axes
}
