package sqlite

import (
	"fmt"

	"github.com/shotgallery/gallery-server/internal/domain"
)

// contentTable describes the table backing one content variant.
type contentTable struct {
	name          string
	screenshotCol string // screenshot_url, or screenshot_urls (JSON array) for flows
	hasWebsiteURL bool
}

var contentTables = map[domain.Variant]contentTable{
	domain.VariantWebsite:   {name: "websites", screenshotCol: "screenshot_url", hasWebsiteURL: true},
	domain.VariantSection:   {name: "sections", screenshotCol: "screenshot_url"},
	domain.VariantDashboard: {name: "dashboards", screenshotCol: "screenshot_url"},
	domain.VariantFlow:      {name: "flows", screenshotCol: "screenshot_urls"},
}

// itemColumns returns the select list scanned by scanItem.
func (t contentTable) itemColumns(alias string) string {
	p := alias + "."
	websiteURL := "NULL"
	if t.hasWebsiteURL {
		websiteURL = p + "website_url"
	}
	return fmt.Sprintf("%[1]sid, %[1]stitle, %[1]sdescription, %[1]s%[2]s, %[3]s, %[1]screated_by, %[1]screated_at, %[1]supdated_at",
		p, t.screenshotCol, websiteURL)
}

// summaryColumns returns the select list scanned by scanSummary. For flows the
// thumbnail is the first element of the screenshot array.
func (t contentTable) summaryColumns(alias string) string {
	p := alias + "."
	thumb := p + t.screenshotCol
	if t.screenshotCol == "screenshot_urls" {
		thumb = "json_extract(" + p + t.screenshotCol + ", '$[0]')"
	}
	websiteURL := "NULL"
	if t.hasWebsiteURL {
		websiteURL = p + "website_url"
	}
	return fmt.Sprintf("%[1]sid, %[1]stitle, %[1]sdescription, %[2]s, %[3]s, %[1]screated_at",
		p, thumb, websiteURL)
}

// tagTable describes the table backing one taxonomy axis.
type tagTable struct {
	name     string
	extraCol string // categories.type or colors.hex_code; empty for fonts and layout types
}

var tagTables = map[domain.Axis]tagTable{
	domain.AxisCategory: {name: "categories", extraCol: "type"},
	domain.AxisFont:     {name: "fonts"},
	domain.AxisColor:    {name: "colors", extraCol: "hex_code"},
	domain.AxisLayout:   {name: "layout_types"},
}

// tagColumns returns the select list scanned by scanTag.
func (t tagTable) tagColumns() string {
	extra := "NULL"
	if t.extraCol != "" {
		extra = t.extraCol
	}
	return "id, name, " + extra + ", created_at"
}

// junction is the association table linking one variant to one axis.
type junction struct {
	table      string
	contentCol string
	tagCol     string
}

// junctions mirrors the variant/axis matrix in domain: a pair has a junction
// table exactly when the variant supports the axis.
var junctions = map[domain.Variant]map[domain.Axis]junction{
	domain.VariantWebsite: {
		domain.AxisCategory: {"website_categories", "website_id", "category_id"},
		domain.AxisFont:     {"website_fonts", "website_id", "font_id"},
		domain.AxisColor:    {"website_colors", "website_id", "color_id"},
	},
	domain.VariantSection: {
		domain.AxisCategory: {"section_categories", "section_id", "category_id"},
	},
	domain.VariantDashboard: {
		domain.AxisCategory: {"dashboard_categories", "dashboard_id", "category_id"},
		domain.AxisColor:    {"dashboard_colors", "dashboard_id", "color_id"},
		domain.AxisLayout:   {"dashboard_layout_types", "dashboard_id", "layout_type_id"},
	},
	domain.VariantFlow: {
		domain.AxisCategory: {"flow_categories", "flow_id", "category_id"},
	},
}

func junctionFor(v domain.Variant, a domain.Axis) (junction, bool) {
	j, ok := junctions[v][a]
	return j, ok
}
