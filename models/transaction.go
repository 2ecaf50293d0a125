package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is one line item of a sale. All line items of one sale share a
// bill number; the bill itself is never persisted, only derived on read.
type Transaction struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	LineID string `json:"line_id" gorm:"size:36;uniqueIndex"` // stable identity across edits

	Date   time.Time `json:"date" gorm:"not null"`
	BillNo string    `json:"billno" gorm:"not null;index"`

	// Item is "<stockName>:<descriptor>"; the part before ':' references
	// stock_items.name for reconciliation.
	Item     string          `json:"item" gorm:"not null"`
	Quantity decimal.Decimal `json:"quantity" gorm:"type:numeric(14,3)"`
	Unit     string          `json:"unit" gorm:"not null"`

	CostPrice    decimal.Decimal `json:"costPrice" gorm:"type:numeric(12,2)"`
	SellingPrice decimal.Decimal `json:"sellingPrice" gorm:"type:numeric(12,2)"`

	// Bill-level paid totals, stamped identically on every line of a bill.
	// Readers must de-duplicate by bill number (one line per bill).
	PaidCash   decimal.Decimal `json:"paidCash" gorm:"type:numeric(12,2)"`
	PaidOnline decimal.Decimal `json:"paidOnline" gorm:"type:numeric(12,2)"`

	Buyer string `json:"buyer" gorm:"not null;default:'Self'"`
	Notes string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if t.LineID == "" {
		t.LineID = uuid.NewString()
	}
	if strings.TrimSpace(t.Buyer) == "" {
		t.Buyer = "Self"
	}
	return
}

// StockName is the stock reference encoded in Item (the part before ':').
func (t *Transaction) StockName() string {
	name, _, _ := strings.Cut(t.Item, ":")
	return strings.TrimSpace(name)
}
