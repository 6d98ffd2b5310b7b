package store

import "github.com/shotgallery/gallery-server/internal/domain"

// Page is one page of a filtered listing plus the metadata needed to page through it.
type Page struct {
	Items      []domain.Summary `json:"items"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
}

// NewPage assembles a page. Items is never nil so an empty page encodes as [].
func NewPage(items []domain.Summary, totalItems, page int) *Page {
	if items == nil {
		items = []domain.Summary{}
	}
	return &Page{
		Items:      items,
		TotalItems: totalItems,
		TotalPages: domain.TotalPages(totalItems),
		Page:       domain.NormalizePage(page),
		PageSize:   domain.PageSize,
	}
}

// EmptyPage is the page returned when a listing could not be computed.
func EmptyPage(page int) *Page {
	return NewPage(nil, 0, page)
}
