package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"webmarcas/backend/internal/match"
)

// ReplaceFamousMarks atomically swaps the famous_marks table with the provided slice.
// Entries are keyed by normalized name; blanks and repeats are skipped.
func (d *Database) ReplaceFamousMarks(marks []FamousMark) error {
	if d == nil {
		return errors.New("database is nil")
	}
	marks = dedupeFamousMarks(marks)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&FamousMark{}).Error; err != nil {
			return err
		}
		if len(marks) == 0 {
			return nil
		}
		// SQLite caps bound variables per statement.
		const batchSize = 250
		return tx.CreateInBatches(marks, batchSize).Error
	})
}

// ListFamousMarks returns the admin-supplied famous marks ordered by name.
func (d *Database) ListFamousMarks() ([]FamousMark, error) {
	if d == nil {
		return nil, errors.New("database is nil")
	}
	var rows []FamousMark
	if err := d.gorm.Order("mark ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func dedupeFamousMarks(in []FamousMark) []FamousMark {
	seen := make(map[string]struct{}, len(in))
	out := make([]FamousMark, 0, len(in))
	for _, m := range in {
		m.Mark = strings.TrimSpace(m.Mark)
		m.Normalized = match.Normalize(m.Mark)
		if m.Normalized == "" {
			continue
		}
		if _, ok := seen[m.Normalized]; ok {
			continue
		}
		seen[m.Normalized] = struct{}{}
		out = append(out, m)
	}
	return out
}
