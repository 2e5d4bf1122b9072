package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SaveContract inserts a rendered contract, assigning an ID when missing.
func (d *Database) SaveContract(c *Contract) error {
	if c == nil {
		return errors.New("contract is nil")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.gorm.Create(c).Error; err != nil {
		return fmt.Errorf("save contract: %w", err)
	}
	return nil
}

// GetContract fetches a rendered contract by ID.
func (d *Database) GetContract(id string) (*Contract, error) {
	var c Contract
	if err := d.gorm.Where("id = ?", id).First(&c).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}
