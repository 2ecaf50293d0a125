package reports

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"khata-backend/models"
	"khata-backend/utils"

	"github.com/shopspring/decimal"
)

// Filename builds the download name for an export: <kind>-report-YYYY-MM-DD.csv.
func Filename(kind string, now time.Time) string {
	return fmt.Sprintf("%s-report-%s.csv", kind, now.Format(time.DateOnly))
}

var overviewHeader = []string{
	"Date", "Buyer", "Bill No", "Item", "Quantity", "Rate",
	"Revenue", "Cost", "Profit", "Paid Amount",
}

// OverviewCSV renders the business report: one row per line item, numerics at
// fixed 2-decimal precision. The whole document is built in memory.
func OverviewCSV(txs []models.Transaction) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(overviewHeader); err != nil {
		return "", err
	}
	for _, t := range txs {
		revenue := t.SellingPrice.Mul(t.Quantity)
		cost := t.CostPrice.Mul(t.Quantity)
		row := []string{
			t.Date.Format(time.DateOnly),
			t.Buyer,
			t.BillNo,
			t.Item,
			utils.Fixed2(t.Quantity),
			utils.Fixed2(t.SellingPrice),
			utils.Fixed2(revenue),
			utils.Fixed2(cost),
			utils.Fixed2(revenue.Sub(cost)),
			utils.Fixed2(t.PaidCash.Add(t.PaidOnline)),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

var pendingHeader = []string{
	"Date", "Buyer", "Bill No", "Item", "Quantity", "Rate", "Total Amount",
	"Paid Cash", "Paid Online", "Total Paid", "Pending Amount", "Notes",
}

// PendingCSV renders the pending report from derived bills: one row per line
// item of every bill that still owes money.
func PendingCSV(bills []Bill) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(pendingHeader); err != nil {
		return "", err
	}
	for _, b := range bills {
		for _, item := range b.Items {
			total := item.SellingPrice.Mul(item.Quantity)
			paid := item.PaidCash.Add(item.PaidOnline)
			pending := total.Sub(paid)
			if pending.IsNegative() {
				pending = decimal.Zero
			}
			row := []string{
				b.Date.Format(time.DateOnly),
				b.Buyer,
				b.BillNo,
				item.Item,
				utils.Fixed2(item.Quantity),
				utils.Fixed2(item.SellingPrice),
				utils.Fixed2(total),
				utils.Fixed2(item.PaidCash),
				utils.Fixed2(item.PaidOnline),
				utils.Fixed2(paid),
				utils.Fixed2(pending),
				item.Notes,
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}
