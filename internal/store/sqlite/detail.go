package sqlite

import (
	"context"
	"database/sql"

	"github.com/shotgallery/gallery-server/internal/domain"
)

// GetDetail loads an item and resolves its tags to names for every axis valid
// for the variant, all from one snapshot.
// Returns store.ErrNotFound if the item does not exist.
func (s *Store) GetDetail(ctx context.Context, v domain.Variant, id string) (*domain.Detail, error) {
	var detail *domain.Detail
	err := s.readTx(ctx, func(tx *sql.Tx) error {
		item, err := getItem(ctx, tx, v, id)
		if err != nil {
			return err
		}

		tags := make(map[domain.Axis][]string, len(v.Axes()))
		for _, axis := range v.Axes() {
			j, _ := junctionFor(v, axis)
			tt := tagTables[axis]
			names, err := queryStrings(ctx, tx,
				`SELECT t.name FROM `+j.table+` j JOIN `+tt.name+` t ON t.id = j.`+j.tagCol+
					` WHERE j.`+j.contentCol+` = ? ORDER BY j.rowid`, id)
			if err != nil {
				return err
			}
			tags[axis] = names
		}

		detail = domain.NewDetail(item, tags)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return detail, nil
}
