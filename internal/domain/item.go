package domain

import "time"

// Item is a piece of gallery content. Every variant shares this shape.
// Non-flow variants hold exactly one screenshot; a flow holds its steps in order.
type Item struct {
	ID          string    `json:"id"`
	Variant     Variant   `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Screenshots []string  `json:"screenshot_urls"`
	WebsiteURL  string    `json:"website_url,omitempty"` // websites only
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Thumbnail returns the representative screenshot, which for a flow is its first step.
func (i *Item) Thumbnail() string {
	if len(i.Screenshots) == 0 {
		return ""
	}
	return i.Screenshots[0]
}

// Touch updates the UpdatedAt timestamp.
func (i *Item) Touch() {
	i.UpdatedAt = time.Now()
}

// Summary converts the item to its listing projection.
func (i *Item) Summary() Summary {
	return Summary{
		ID:          i.ID,
		Variant:     i.Variant,
		Title:       i.Title,
		Description: i.Description,
		Thumbnail:   i.Thumbnail(),
		WebsiteURL:  i.WebsiteURL,
		CreatedAt:   i.CreatedAt,
	}
}

// Summary is the per-item payload of a listing page.
type Summary struct {
	ID          string    `json:"id"`
	Variant     Variant   `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"screenshot_url"`
	WebsiteURL  string    `json:"website_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Detail is an item with its tags resolved to names for every axis valid for its variant.
type Detail struct {
	Item
	Tags            map[Axis][]string `json:"tags"`
	ScreenshotCount int               `json:"screenshot_count"`
}

// NewDetail builds a Detail, making sure every valid axis has a non-nil entry.
func NewDetail(item *Item, tags map[Axis][]string) *Detail {
	resolved := make(map[Axis][]string, len(item.Variant.Axes()))
	for _, axis := range item.Variant.Axes() {
		names := tags[axis]
		if names == nil {
			names = []string{}
		}
		resolved[axis] = names
	}
	return &Detail{
		Item:            *item,
		Tags:            resolved,
		ScreenshotCount: len(item.Screenshots),
	}
}
