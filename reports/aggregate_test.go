package reports

import (
	"sort"
	"testing"
	"time"

	"khata-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(billNo, item string, qty, rate, paidCash, paidOnline float64, buyer string, date time.Time) models.Transaction {
	return models.Transaction{
		LineID:       billNo + "/" + item,
		Date:         date,
		BillNo:       billNo,
		Item:         item,
		Quantity:     decimal.NewFromFloat(qty),
		Unit:         "kg",
		CostPrice:    decimal.NewFromFloat(rate / 2),
		SellingPrice: decimal.NewFromFloat(rate),
		PaidCash:     decimal.NewFromFloat(paidCash),
		PaidOnline:   decimal.NewFromFloat(paidOnline),
		Buyer:        buyer,
	}
}

var testDay = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func TestGroupBills_PartitionsByBillNo(t *testing.T) {
	txs := []models.Transaction{
		tx("B1", "Cement:bag", 2, 100, 50, 50, "Ravi", testDay),
		tx("B2", "Sand:fine", 1, 80, 80, 0, "Anu", testDay),
		tx("B1", "Bricks:red", 10, 8, 50, 50, "Ravi", testDay),
	}

	bills := GroupBills(txs)
	require.Len(t, bills, 2)

	assert.Equal(t, "B1", bills[0].BillNo, "first-seen order preserved")
	assert.Len(t, bills[0].Items, 2)
	assert.Equal(t, "B2", bills[1].BillNo)

	// B1 total = 2×100 + 10×8 = 280; paid is bill-level, not summed per line.
	assert.True(t, bills[0].Total.Equal(decimal.NewFromInt(280)))
	assert.True(t, bills[0].Paid.Equal(decimal.NewFromInt(100)))
	assert.True(t, bills[0].Pending.Equal(decimal.NewFromInt(180)))
}

func TestGroupBills_FlattenRoundTrip(t *testing.T) {
	txs := []models.Transaction{
		tx("B1", "Cement:bag", 2, 100, 0, 0, "Ravi", testDay),
		tx("B2", "Sand:fine", 1, 80, 0, 0, "Anu", testDay),
		tx("B1", "Bricks:red", 10, 8, 0, 0, "Ravi", testDay),
		tx("B3", "Cement:bag", 4, 100, 0, 0, "Ravi", testDay),
	}

	flat := Flatten(GroupBills(txs))
	require.Len(t, flat, len(txs))

	ids := func(list []models.Transaction) []string {
		out := make([]string, len(list))
		for i, t := range list {
			out[i] = t.LineID
		}
		sort.Strings(out)
		return out
	}
	assert.Equal(t, ids(txs), ids(flat), "same multiset of transactions")
}

func TestGroupBills_PendingNeverNegative(t *testing.T) {
	// Paid exceeds total: pending floors at zero.
	overpaid := tx("B1", "Cement:bag", 1, 100, 150, 0, "Ravi", testDay)

	bills := GroupBills([]models.Transaction{overpaid})
	require.Len(t, bills, 1)
	assert.True(t, bills[0].Pending.IsZero())
}

func TestGroupBills_BillTotalsScenario(t *testing.T) {
	// One line: sellingPrice 100, quantity 2, paidCash 50, paidOnline 50.
	bill := GroupBills([]models.Transaction{
		tx("B1", "Cement:bag", 2, 100, 50, 50, "Ravi", testDay),
	})[0]

	assert.True(t, bill.Total.Equal(decimal.NewFromInt(200)))
	assert.True(t, bill.Paid.Equal(decimal.NewFromInt(100)))
	assert.True(t, bill.Pending.Equal(decimal.NewFromInt(100)))
}

func TestPendingByBuyer(t *testing.T) {
	early := testDay.AddDate(0, 0, -10)
	txs := []models.Transaction{
		tx("B1", "Cement:bag", 2, 100, 0, 0, "Ravi", testDay),  // pending 200
		tx("B2", "Sand:fine", 1, 80, 80, 0, "Anu", testDay),    // fully paid
		tx("B3", "Bricks:red", 10, 8, 30, 0, "Ravi", early),    // bill total 100, paid 30
		tx("B3", "Sand:fine", 1, 20, 30, 0, "Ravi", early),     // same bill, same stamped paid
		tx("B4", "Cement:bag", 1, 60, 0, 0, "", testDay),       // missing buyer
	}

	summaries := PendingByBuyer(txs)
	require.Len(t, summaries, 2, "fully paid buyers excluded")

	ravi := summaries[0]
	assert.Equal(t, "Ravi", ravi.Buyer)
	// B1 pending 200 + B3 pending (100-30) = 270
	assert.True(t, ravi.TotalPending.Equal(decimal.NewFromInt(270)))
	assert.True(t, ravi.TotalAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, 3, ravi.TransactionCount, "counts line items, not bills")
	assert.True(t, ravi.LastDate.Equal(testDay))
	assert.True(t, ravi.OldestDate.Equal(early))

	assert.Equal(t, UnknownBuyer, summaries[1].Buyer)
}
