package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/store"
)

func contentTableFor(v domain.Variant) (contentTable, error) {
	t, ok := contentTables[v]
	if !ok {
		return contentTable{}, store.Invalid("type", "unknown content type %q", v)
	}
	return t, nil
}

// scanItem scans a row selected with contentTable.itemColumns into a domain.Item.
func scanItem(scanner interface{ Scan(dest ...any) error }, v domain.Variant) (*domain.Item, error) {
	item := domain.Item{Variant: v}

	var (
		screenshots string
		websiteURL  sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&item.ID,
		&item.Title,
		&item.Description,
		&screenshots,
		&websiteURL,
		&item.CreatedBy,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if v.MultiScreenshot() {
		if err := json.Unmarshal([]byte(screenshots), &item.Screenshots); err != nil {
			return nil, fmt.Errorf("decode screenshot_urls of %s: %w", item.ID, err)
		}
	} else {
		item.Screenshots = []string{screenshots}
	}
	item.WebsiteURL = websiteURL.String

	item.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	item.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// screenshotValue encodes the screenshot list for the variant's screenshot column.
func screenshotValue(item *domain.Item) (string, error) {
	if len(item.Screenshots) == 0 {
		return "", store.Invalid("screenshot_urls", "at least one screenshot is required")
	}
	if !item.Variant.MultiScreenshot() {
		if len(item.Screenshots) != 1 {
			return "", store.Invalid("screenshot_urls", "%s content takes exactly one screenshot", item.Variant)
		}
		return item.Screenshots[0], nil
	}
	b, err := json.Marshal(item.Screenshots)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkItem(item *domain.Item) (contentTable, string, error) {
	ct, err := contentTableFor(item.Variant)
	if err != nil {
		return ct, "", err
	}
	if item.WebsiteURL != "" && !ct.hasWebsiteURL {
		return ct, "", store.Invalid("website_url", "only websites have a website url")
	}
	shots, err := screenshotValue(item)
	if err != nil {
		return ct, "", err
	}
	return ct, shots, nil
}

// CreateItem inserts a content item and its associations in one transaction.
// Returns store.ErrAlreadyExists on a duplicate ID and a validation error when
// the creator or any tag is unknown.
func (s *Store) CreateItem(ctx context.Context, item *domain.Item, tags domain.TagSet) error {
	ct, shots, err := checkItem(item)
	if err != nil {
		return err
	}

	return s.writeTx(ctx, func(tx *sql.Tx) error {
		cols := `id, title, description, ` + ct.screenshotCol + `, created_by, created_at, updated_at`
		args := []any{
			item.ID,
			item.Title,
			item.Description,
			shots,
			item.CreatedBy,
			formatTime(item.CreatedAt),
			formatTime(item.UpdatedAt),
		}
		placeholders := `?, ?, ?, ?, ?, ?, ?`
		if ct.hasWebsiteURL {
			cols += `, website_url`
			args = append(args, nullString(item.WebsiteURL))
			placeholders += `, ?`
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO `+ct.name+` (`+cols+`) VALUES (`+placeholders+`)`, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrAlreadyExists
			}
			if isForeignKeyViolation(err) {
				return store.Invalid("created_by", "unknown user %q", item.CreatedBy)
			}
			return err
		}

		return replaceAssociations(ctx, tx, item.Variant, item.ID, tags)
	})
}

// GetItem retrieves a content item by variant and ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetItem(ctx context.Context, v domain.Variant, id string) (*domain.Item, error) {
	return getItem(ctx, s.db, v, id)
}

func getItem(ctx context.Context, q queryRower, v domain.Variant, id string) (*domain.Item, error) {
	ct, err := contentTableFor(v)
	if err != nil {
		return nil, err
	}
	row := q.QueryRowContext(ctx,
		`SELECT `+ct.itemColumns("c")+` FROM `+ct.name+` c WHERE c.id = ?`, id)

	item, err := scanItem(row, v)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateItem overwrites an item's fields. A nil tags leaves the associations
// untouched; any non-nil TagSet fully replaces them in the same transaction.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) UpdateItem(ctx context.Context, item *domain.Item, tags domain.TagSet) error {
	ct, shots, err := checkItem(item)
	if err != nil {
		return err
	}

	return s.writeTx(ctx, func(tx *sql.Tx) error {
		sets := `title = ?, description = ?, ` + ct.screenshotCol + ` = ?, updated_at = ?`
		args := []any{item.Title, item.Description, shots, formatTime(item.UpdatedAt)}
		if ct.hasWebsiteURL {
			sets += `, website_url = ?`
			args = append(args, nullString(item.WebsiteURL))
		}
		args = append(args, item.ID)

		res, err := tx.ExecContext(ctx, `UPDATE `+ct.name+` SET `+sets+` WHERE id = ?`, args...)
		if err != nil {
			return err
		}
		if err := affectedOrNotFound(res); err != nil {
			return err
		}

		if tags == nil {
			return nil
		}
		return replaceAssociations(ctx, tx, item.Variant, item.ID, tags)
	})
}

// DeleteItem removes a content item. Its associations are removed by cascade.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteItem(ctx context.Context, v domain.Variant, id string) error {
	ct, err := contentTableFor(v)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+ct.name+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
