package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Debtor struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null;size:100" json:"name"`
	Amount      int       `gorm:"not null;default:0" json:"amount"` // outstanding units, never negative
	Hidden      bool      `gorm:"not null;default:false" json:"hidden"`
	LastUpdated time.Time `gorm:"column:last_updated" json:"last_updated"`
}

func (d *Debtor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Request structs
type CreateDebtorRequest struct {
	Name string `json:"name" binding:"required"`
}

type AdjustAmountRequest struct {
	Delta *int `json:"delta" binding:"required"` // pointer so delta 0 still binds
}
