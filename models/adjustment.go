package models

import (
	"time"

	"gorm.io/datatypes"
)

// StockAdjustment is an audit record of one reconciliation batch. Lines holds
// the line-item snapshot the deltas were computed from, so an inconsistent
// stock level can be traced back to the sale that caused it.
type StockAdjustment struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	BillNo    string         `json:"billno" gorm:"not null;index"`
	Action    string         `json:"action" gorm:"type:VARCHAR(10)"` // "create" | "edit" | "delete"
	Lines     datatypes.JSON `json:"lines" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"created_at"`
}
