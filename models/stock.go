package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockItem is the current on-hand state of one article. Quantity is the only
// field reconciliation touches; it may go negative (no clamping anywhere).
type StockItem struct {
	Id       string          `json:"id" gorm:"primaryKey"`
	Name     string          `json:"name" gorm:"not null;uniqueIndex"`
	Category string          `json:"category" gorm:"not null"`
	Quantity decimal.Decimal `json:"quantity" gorm:"type:numeric(14,3)"`
	Price    decimal.Decimal `json:"price" gorm:"type:numeric(12,2)"` // current cost price
	Supplier string          `json:"supplier"`
	Unit     string          `json:"unit" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *StockItem) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if s.Id == "" {
		s.Id = uuid.NewString()
	}
	return
}
