package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateTemplate inserts a new template. Names are unique.
func (d *Database) CreateTemplate(t *ContractTemplate) error {
	if t == nil {
		return errors.New("template is nil")
	}
	t.ID = 0
	t.Name = strings.TrimSpace(t.Name)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		if err := ensureNameFree(tx, t.Name, 0); err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return promoteDefault(tx, t)
	})
}

// UpdateTemplate overwrites name, body and default flag of an existing template.
func (d *Database) UpdateTemplate(t *ContractTemplate) error {
	if t == nil || t.ID == 0 {
		return errors.New("template id is required")
	}
	t.Name = strings.TrimSpace(t.Name)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		var existing ContractTemplate
		if err := tx.First(&existing, t.ID).Error; err != nil {
			return notFound(err)
		}
		if err := ensureNameFree(tx, t.Name, t.ID); err != nil {
			return err
		}
		t.CreatedAt = existing.CreatedAt
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		return promoteDefault(tx, t)
	})
}

// UpsertTemplate inserts or replaces a template keyed by name.
func (d *Database) UpsertTemplate(t *ContractTemplate) error {
	if t == nil {
		return errors.New("template is nil")
	}
	t.ID = 0
	t.Name = strings.TrimSpace(t.Name)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.gorm.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "is_default", "updated_at"}),
		}).Create(t).Error
		if err != nil {
			return err
		}
		var stored ContractTemplate
		if err := tx.Where("name = ?", t.Name).First(&stored).Error; err != nil {
			return err
		}
		*t = stored
		return promoteDefault(tx, t)
	})
}

// GetTemplate fetches a template by ID.
func (d *Database) GetTemplate(id uint) (*ContractTemplate, error) {
	var t ContractTemplate
	if err := d.gorm.First(&t, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// GetTemplateByName fetches a template by its unique name.
func (d *Database) GetTemplateByName(name string) (*ContractTemplate, error) {
	var t ContractTemplate
	if err := d.gorm.Where("name = ?", strings.TrimSpace(name)).First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// DefaultTemplate returns the template flagged as default.
func (d *Database) DefaultTemplate() (*ContractTemplate, error) {
	var t ContractTemplate
	if err := d.gorm.Where("is_default = ?", true).Order("updated_at DESC").First(&t).Error; err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// ListTemplates returns every template ordered by name.
func (d *Database) ListTemplates() ([]ContractTemplate, error) {
	var rows []ContractTemplate
	if err := d.gorm.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeleteTemplate removes a template by ID.
func (d *Database) DeleteTemplate(id uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	res := d.gorm.Delete(&ContractTemplate{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func ensureNameFree(tx *gorm.DB, name string, id uint) error {
	var count int64
	if err := tx.Model(&ContractTemplate{}).Where("name = ? AND id <> ?", name, id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrConflict
	}
	return nil
}

// promoteDefault keeps at most one default template.
func promoteDefault(tx *gorm.DB, t *ContractTemplate) error {
	if !t.IsDefault {
		return nil
	}
	return tx.Model(&ContractTemplate{}).Where("id <> ? AND is_default = ?", t.ID, true).Update("is_default", false).Error
}
