package domain

// PageSize is the fixed number of items on a listing page.
const PageSize = 12

// NormalizePage treats missing and non-positive page numbers as the first page.
func NormalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// TotalPages returns ceil(total / PageSize), and 0 for an empty result.
func TotalPages(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + PageSize - 1) / PageSize
}

// Offset returns the row offset of a (normalized) page.
func Offset(page int) int {
	return (NormalizePage(page) - 1) * PageSize
}
