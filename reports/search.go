package reports

import (
	"strings"

	"khata-backend/models"
)

// FilterBills keeps bills where any line's item name or the bill number
// contains q (case-insensitive). A single matching line keeps the whole bill
// with all of its lines.
func FilterBills(bills []Bill, q string) []Bill {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return bills
	}
	out := make([]Bill, 0, len(bills))
	for _, b := range bills {
		if strings.Contains(strings.ToLower(b.BillNo), q) {
			out = append(out, b)
			continue
		}
		for _, item := range b.Items {
			if strings.Contains(strings.ToLower(item.Item), q) {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// FilterStock keeps stock items whose name or category contains q
// (case-insensitive).
func FilterStock(items []models.StockItem, q string) []models.StockItem {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items
	}
	out := make([]models.StockItem, 0, len(items))
	for _, s := range items {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Category), q) {
			out = append(out, s)
		}
	}
	return out
}
