// Package reports turns the flat transaction list into grouped, filtered and
// sorted views. Everything here is a pure function of its inputs (plus an
// explicit "now" where date math is involved) so the same code serves the
// HTTP layer and the tests.
package reports

import (
	"time"

	"khata-backend/models"

	"github.com/shopspring/decimal"
)

// UnknownBuyer labels bills whose buyer field is empty.
const UnknownBuyer = "Unknown"

// Bill is the derived view of all line items sharing one bill number.
type Bill struct {
	BillNo string               `json:"billno"`
	Date   time.Time            `json:"date"`
	Buyer  string               `json:"buyer"`
	Notes  string               `json:"notes"`
	Items  []models.Transaction `json:"items"`

	Total      decimal.Decimal `json:"totalAmount"` // Σ sellingPrice×quantity
	PaidCash   decimal.Decimal `json:"paidCash"`
	PaidOnline decimal.Decimal `json:"paidOnline"`
	Paid       decimal.Decimal `json:"totalPaid"`
	Pending    decimal.Decimal `json:"pending"` // max(total−paid, 0)
}

// BuyerSummary aggregates the pending bills of one buyer.
type BuyerSummary struct {
	Buyer            string          `json:"buyer"`
	TotalPending     decimal.Decimal `json:"totalPending"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int             `json:"transactionCount"` // line items, not bills
	LastDate         time.Time       `json:"lastDate"`
	OldestDate       time.Time       `json:"oldestDate"`
	Bills            []Bill          `json:"bills"`
}

// GroupBills partitions transactions by bill number, preserving the first-seen
// order of bills. Paid amounts are stored redundantly on every line of a
// bill, so the bill-level value is taken from one line, not summed.
func GroupBills(txs []models.Transaction) []Bill {
	order := make([]string, 0)
	byNo := make(map[string]*Bill)

	for _, t := range txs {
		b, ok := byNo[t.BillNo]
		if !ok {
			b = &Bill{
				BillNo:     t.BillNo,
				Date:       t.Date,
				Buyer:      t.Buyer,
				Notes:      t.Notes,
				PaidCash:   t.PaidCash,
				PaidOnline: t.PaidOnline,
			}
			byNo[t.BillNo] = b
			order = append(order, t.BillNo)
		}
		b.Items = append(b.Items, t)
		b.Total = b.Total.Add(t.SellingPrice.Mul(t.Quantity))
	}

	bills := make([]Bill, 0, len(order))
	for _, no := range order {
		b := byNo[no]
		b.Paid = b.PaidCash.Add(b.PaidOnline)
		b.Pending = b.Total.Sub(b.Paid)
		if b.Pending.IsNegative() {
			b.Pending = decimal.Zero
		}
		bills = append(bills, *b)
	}
	return bills
}

// Flatten is the inverse of GroupBills: it reproduces the original multiset
// of transactions.
func Flatten(bills []Bill) []models.Transaction {
	var txs []models.Transaction
	for _, b := range bills {
		txs = append(txs, b.Items...)
	}
	return txs
}

// PendingByBuyer groups bills that still owe money by buyer, in first-seen
// buyer order. Callers sort the result.
func PendingByBuyer(txs []models.Transaction) []BuyerSummary {
	order := make([]string, 0)
	byBuyer := make(map[string]*BuyerSummary)

	for _, b := range GroupBills(txs) {
		if !b.Pending.IsPositive() {
			continue
		}
		buyer := b.Buyer
		if buyer == "" {
			buyer = UnknownBuyer
		}
		s, ok := byBuyer[buyer]
		if !ok {
			s = &BuyerSummary{Buyer: buyer, LastDate: b.Date, OldestDate: b.Date}
			byBuyer[buyer] = s
			order = append(order, buyer)
		}
		s.TotalPending = s.TotalPending.Add(b.Pending)
		s.TotalAmount = s.TotalAmount.Add(b.Total)
		s.TransactionCount += len(b.Items)
		s.Bills = append(s.Bills, b)
		if b.Date.After(s.LastDate) {
			s.LastDate = b.Date
		}
		if b.Date.Before(s.OldestDate) {
			s.OldestDate = b.Date
		}
	}

	out := make([]BuyerSummary, 0, len(order))
	for _, buyer := range order {
		out = append(out, *byBuyer[buyer])
	}
	return out
}
