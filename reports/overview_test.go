package reports

import (
	"testing"
	"time"
	"unicode/utf8"

	"khata-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview_EmptyInput(t *testing.T) {
	m := Overview(nil)

	assert.True(t, m.TotalRevenue.IsZero())
	assert.True(t, m.TotalInvestment.IsZero())
	assert.True(t, m.TotalProfit.IsZero())
	assert.True(t, m.TotalPaid.IsZero())
	assert.True(t, m.TotalPending.IsZero())
	assert.Zero(t, m.ProfitMargin)
	assert.Zero(t, m.TotalBills)
	assert.True(t, m.AvgOrderValue.IsZero())
	assert.Empty(t, m.Monthly)
	assert.Empty(t, m.TopBuyers)
	assert.Empty(t, m.Daily)
}

func TestOverview_Metrics(t *testing.T) {
	txs := []models.Transaction{
		tx("B1", "Cement:bag", 2, 100, 50, 50, "Ravi", testDay), // revenue 200, cost 100
		tx("B1", "Sand:fine", 1, 50, 50, 50, "Ravi", testDay),   // revenue 50, cost 25
		tx("B2", "Bricks:red", 10, 10, 60, 0, "Anu", testDay),   // revenue 100, cost 50
	}

	m := Overview(txs)

	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(350)))
	assert.True(t, m.TotalInvestment.Equal(decimal.NewFromInt(175)))
	assert.True(t, m.TotalProfit.Equal(decimal.NewFromInt(175)))
	// Paid counted once per bill: B1 contributes 100, not 200.
	assert.True(t, m.TotalPaid.Equal(decimal.NewFromInt(160)))
	assert.True(t, m.TotalPending.Equal(decimal.NewFromInt(190)))
	assert.Equal(t, 2, m.TotalBills)
	assert.InDelta(t, 50.0, m.ProfitMargin, 0.001)
	assert.True(t, m.AvgOrderValue.Equal(decimal.NewFromInt(175)))
}

func TestOverview_PaymentSplitDedupesByBill(t *testing.T) {
	txs := []models.Transaction{
		tx("B1", "Cement:bag", 1, 100, 40, 60, "Ravi", testDay),
		tx("B1", "Sand:fine", 1, 50, 40, 60, "Ravi", testDay),
	}

	m := Overview(txs)
	require.Len(t, m.Payments, 2)
	assert.Equal(t, "Cash", m.Payments[0].Name)
	assert.True(t, m.Payments[0].Value.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "Online", m.Payments[1].Name)
	assert.True(t, m.Payments[1].Value.Equal(decimal.NewFromInt(60)))
}

func TestOverview_TopBuyers(t *testing.T) {
	txs := []models.Transaction{
		tx("B1", "Cement:bag", 1, 100, 0, 0, "A Very Long Buyer Name Indeed", testDay),
		tx("B2", "Cement:bag", 1, 300, 0, 0, "Anu", testDay),
	}

	m := Overview(txs)
	require.Len(t, m.TopBuyers, 2)
	assert.Equal(t, "Anu", m.TopBuyers[0].Name, "sorted by spend, descending")
	assert.Equal(t, "A Very Long Buy...", m.TopBuyers[1].Name, "long names truncated")
}

func TestOverview_TopBuyersTruncateOnRunes(t *testing.T) {
	txs := []models.Transaction{
		tx("B1", "Cement:bag", 1, 100, 0, 0, "Müller Baumarkt München GmbH", testDay),
	}

	m := Overview(txs)
	require.Len(t, m.TopBuyers, 1)
	assert.Equal(t, "Müller Baumarkt...", m.TopBuyers[0].Name)
	assert.True(t, utf8.ValidString(m.TopBuyers[0].Name),
		"multibyte names are never cut mid-rune")
}

func TestOverview_MonthlyBreakdown(t *testing.T) {
	may := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	txs := []models.Transaction{
		tx("B1", "Cement:bag", 1, 100, 0, 0, "Ravi", may),
		tx("B2", "Cement:bag", 2, 100, 0, 0, "Ravi", testDay),
	}

	m := Overview(txs)
	require.Len(t, m.Monthly, 2)
	assert.Equal(t, "May 2024", m.Monthly[0].Month)
	assert.True(t, m.Monthly[0].Revenue.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Jun 2024", m.Monthly[1].Month)
	assert.True(t, m.Monthly[1].Revenue.Equal(decimal.NewFromInt(200)))
}
