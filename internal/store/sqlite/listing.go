package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/store"
)

// filterClause builds the FROM clause shared by the count and data queries.
// Each filtered axis adds an inner join through its junction table to the tag
// table, matched on the exact tag name. Filters on different axes are ANDed.
func filterClause(q *store.ListQuery) (string, []any) {
	ct := contentTables[q.Variant]

	var b strings.Builder
	b.WriteString(ct.name)
	b.WriteString(" c")

	args := make([]any, 0, len(q.Filters))
	for i, axis := range q.SortedAxes() {
		j, _ := junctionFor(q.Variant, axis)
		tt := tagTables[axis]
		ja, ta := fmt.Sprintf("j%d", i), fmt.Sprintf("t%d", i)
		fmt.Fprintf(&b, " JOIN %s %s ON %s.%s = c.id", j.table, ja, ja, j.contentCol)
		fmt.Fprintf(&b, " JOIN %s %s ON %s.id = %s.%s AND %s.name = ?", tt.name, ta, ta, ja, j.tagCol, ta)
		args = append(args, q.Filters[axis])
	}
	return b.String(), args
}

// scanSummary scans a row selected with contentTable.summaryColumns.
func scanSummary(scanner interface{ Scan(dest ...any) error }, v domain.Variant) (domain.Summary, error) {
	sum := domain.Summary{Variant: v}

	var (
		thumb      sql.NullString
		websiteURL sql.NullString
		createdAt  string
	)
	if err := scanner.Scan(&sum.ID, &sum.Title, &sum.Description, &thumb, &websiteURL, &createdAt); err != nil {
		return sum, err
	}
	sum.Thumbnail = thumb.String
	sum.WebsiteURL = websiteURL.String

	var err error
	sum.CreatedAt, err = parseTime(createdAt)
	return sum, err
}

// List returns one page of a variant's items, newest first, narrowed by the
// query's filters. The total is counted with the same joins as the page.
func (s *Store) List(ctx context.Context, q store.ListQuery) (*store.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	ct := contentTables[q.Variant]
	from, args := filterClause(&q)

	var page *store.Page
	err := s.readTx(ctx, func(tx *sql.Tx) error {
		// Names are not unique for colors, so one item can match a filter
		// through several tags; DISTINCT keeps it a single row.
		var total int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(DISTINCT c.id) FROM `+from, args...).Scan(&total); err != nil {
			return fmt.Errorf("count %s: %w", ct.name, err)
		}

		items := make([]domain.Summary, 0, domain.PageSize)
		if total > 0 {
			dataArgs := append(append([]any{}, args...), domain.PageSize, domain.Offset(q.Page))
			rows, err := tx.QueryContext(ctx,
				`SELECT DISTINCT `+ct.summaryColumns("c")+` FROM `+from+
					` ORDER BY c.created_at DESC, c.id DESC LIMIT ? OFFSET ?`, dataArgs...)
			if err != nil {
				return fmt.Errorf("list %s: %w", ct.name, err)
			}
			defer rows.Close()

			for rows.Next() {
				sum, err := scanSummary(rows, q.Variant)
				if err != nil {
					return err
				}
				items = append(items, sum)
			}
			if err := rows.Err(); err != nil {
				return err
			}
		}

		page = store.NewPage(items, total, q.Page)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}
