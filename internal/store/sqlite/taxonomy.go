package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/store"
)

func tagTableFor(axis domain.Axis) (tagTable, error) {
	t, ok := tagTables[axis]
	if !ok {
		return tagTable{}, store.Invalid("axis", "unknown taxonomy axis %q", axis)
	}
	return t, nil
}

// scanTag scans a row selected with tagTable.tagColumns into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }, axis domain.Axis) (*domain.Tag, error) {
	t := domain.Tag{Axis: axis}

	var (
		extra     sql.NullString
		createdAt string
	)

	if err := scanner.Scan(&t.ID, &t.Name, &extra, &createdAt); err != nil {
		return nil, err
	}

	switch axis {
	case domain.AxisCategory:
		t.CategoryType = domain.Variant(extra.String)
	case domain.AxisColor:
		t.HexCode = extra.String
	}

	var err error
	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// extraValue returns the value written to the axis-specific column.
func extraValue(t *domain.Tag) sql.NullString {
	switch t.Axis {
	case domain.AxisCategory:
		return nullString(string(t.CategoryType))
	case domain.AxisColor:
		return nullString(t.HexCode)
	}
	return sql.NullString{}
}

// CreateTag inserts a taxonomy entry into the table for its axis.
// Returns store.ErrAlreadyExists when the name is taken (per type for categories).
func (s *Store) CreateTag(ctx context.Context, tag *domain.Tag) error {
	tt, err := tagTableFor(tag.Axis)
	if err != nil {
		return err
	}
	if tag.Axis == domain.AxisCategory && !tag.CategoryType.Valid() {
		return store.Invalid("type", "unknown content type %q", tag.CategoryType)
	}

	if tt.extraCol == "" {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO `+tt.name+` (id, name, created_at) VALUES (?, ?, ?)`,
			tag.ID, tag.Name, formatTime(tag.CreatedAt))
	} else {
		_, err = s.db.ExecContext(ctx,
			`INSERT INTO `+tt.name+` (id, name, `+tt.extraCol+`, created_at) VALUES (?, ?, ?, ?)`,
			tag.ID, tag.Name, extraValue(tag), formatTime(tag.CreatedAt))
	}
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetTag retrieves a taxonomy entry by axis and ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetTag(ctx context.Context, axis domain.Axis, id string) (*domain.Tag, error) {
	return getTag(ctx, s.db, axis, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getTag(ctx context.Context, q queryRower, axis domain.Axis, id string) (*domain.Tag, error) {
	tt, err := tagTableFor(axis)
	if err != nil {
		return nil, err
	}
	row := q.QueryRowContext(ctx,
		`SELECT `+tt.tagColumns()+` FROM `+tt.name+` WHERE id = ?`, id)

	t, err := scanTag(row, axis)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTags returns the entries of one axis ordered by name. For categories a
// non-empty categoryType limits the result to that content type.
func (s *Store) ListTags(ctx context.Context, axis domain.Axis, categoryType domain.Variant) ([]*domain.Tag, error) {
	tt, err := tagTableFor(axis)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + tt.tagColumns() + ` FROM ` + tt.name
	var args []any
	if categoryType != "" {
		if axis != domain.AxisCategory {
			return nil, store.Invalid("type", "only categories are scoped by content type")
		}
		query += ` WHERE type = ?`
		args = append(args, string(categoryType))
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows, axis)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// UpdateTag renames a taxonomy entry and updates its axis-specific field.
// A category's type cannot change while content of the old type references it.
func (s *Store) UpdateTag(ctx context.Context, tag *domain.Tag) error {
	tt, err := tagTableFor(tag.Axis)
	if err != nil {
		return err
	}

	return s.writeTx(ctx, func(tx *sql.Tx) error {
		current, err := getTag(ctx, tx, tag.Axis, tag.ID)
		if err != nil {
			return err
		}

		if tag.Axis == domain.AxisCategory && tag.CategoryType != current.CategoryType {
			if !tag.CategoryType.Valid() {
				return store.Invalid("type", "unknown content type %q", tag.CategoryType)
			}
			j, _ := junctionFor(current.CategoryType, domain.AxisCategory)
			var n int
			if err := tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM `+j.table+` WHERE `+j.tagCol+` = ?`, tag.ID).Scan(&n); err != nil {
				return err
			}
			if n > 0 {
				return store.Invalid("type", "category is attached to %d %s item(s)", n, current.CategoryType)
			}
		}

		if tt.extraCol == "" {
			_, err = tx.ExecContext(ctx,
				`UPDATE `+tt.name+` SET name = ? WHERE id = ?`, tag.Name, tag.ID)
		} else {
			_, err = tx.ExecContext(ctx,
				fmt.Sprintf(`UPDATE %s SET name = ?, %s = ? WHERE id = ?`, tt.name, tt.extraCol),
				tag.Name, extraValue(tag), tag.ID)
		}
		if err != nil {
			if isUniqueViolation(err) {
				return store.ErrAlreadyExists
			}
			return err
		}
		tag.CreatedAt = current.CreatedAt
		return nil
	})
}

// DeleteTag removes a taxonomy entry. Its associations are removed by cascade.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) DeleteTag(ctx context.Context, axis domain.Axis, id string) error {
	tt, err := tagTableFor(axis)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM `+tt.name+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
