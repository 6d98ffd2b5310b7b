package sqlite

import (
	"context"
	"database/sql"

	"github.com/shotgallery/gallery-server/internal/domain"
	"github.com/shotgallery/gallery-server/internal/store"
)

// ReplaceAssociations makes the item's tags exactly equal to tags, for every
// axis valid for the variant. Axes missing from tags end up with no tags.
// Either every change is applied or none is.
func (s *Store) ReplaceAssociations(ctx context.Context, v domain.Variant, contentID string, tags domain.TagSet) error {
	if _, err := contentTableFor(v); err != nil {
		return err
	}
	return s.writeTx(ctx, func(tx *sql.Tx) error {
		return replaceAssociations(ctx, tx, v, contentID, tags)
	})
}

func replaceAssociations(ctx context.Context, tx *sql.Tx, v domain.Variant, contentID string, tags domain.TagSet) error {
	if err := itemExists(ctx, tx, v, contentID); err != nil {
		return err
	}

	for axis, ids := range tags {
		if len(ids) > 0 && !v.Supports(axis) {
			return store.Invalid(string(axis), "%s content cannot be tagged by %s", v, axis)
		}
	}

	// Validate everything before the first write.
	for _, axis := range v.Axes() {
		for _, tagID := range tags.IDs(axis) {
			tag, err := getTag(ctx, tx, axis, tagID)
			if err == store.ErrNotFound {
				return store.Invalid(string(axis), "unknown %s %q", axis, tagID)
			}
			if err != nil {
				return err
			}
			if !tag.CanTag(v) {
				return store.Invalid(string(axis), "category %q is for %s content, not %s", tag.Name, tag.CategoryType, v)
			}
		}
	}

	for _, axis := range v.Axes() {
		j, _ := junctionFor(v, axis)
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM `+j.table+` WHERE `+j.contentCol+` = ?`, contentID); err != nil {
			return err
		}
		for _, tagID := range tags.IDs(axis) {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO `+j.table+` (`+j.contentCol+`, `+j.tagCol+`) VALUES (?, ?)`,
				contentID, tagID); err != nil {
				return err
			}
		}
	}
	return nil
}

func itemExists(ctx context.Context, q queryRower, v domain.Variant, id string) error {
	ct, err := contentTableFor(v)
	if err != nil {
		return err
	}
	var one int
	err = q.QueryRowContext(ctx, `SELECT 1 FROM `+ct.name+` WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	return err
}

// Associations returns the tag ids attached to an item, in the order they were
// attached. Every axis valid for the variant is present in the result.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) Associations(ctx context.Context, v domain.Variant, contentID string) (domain.TagSet, error) {
	var out domain.TagSet
	err := s.readTx(ctx, func(tx *sql.Tx) error {
		if err := itemExists(ctx, tx, v, contentID); err != nil {
			return err
		}
		out = make(domain.TagSet, len(v.Axes()))
		for _, axis := range v.Axes() {
			j, _ := junctionFor(v, axis)
			ids, err := queryStrings(ctx, tx,
				`SELECT `+j.tagCol+` FROM `+j.table+` WHERE `+j.contentCol+` = ? ORDER BY rowid`, contentID)
			if err != nil {
				return err
			}
			out[axis] = ids
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// queryStrings runs a single-column query and collects the results. The
// returned slice is never nil.
func queryStrings(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
