package reports

import (
	"sort"
	"time"

	"khata-backend/models"
	"khata-backend/utils"

	"github.com/shopspring/decimal"
)

// Metrics is the overview report over one filtered transaction set.
type Metrics struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	TotalProfit     decimal.Decimal `json:"totalProfit"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	TotalPending    decimal.Decimal `json:"totalPending"`
	ProfitMargin    float64         `json:"profitMargin"` // percent, 0 when revenue is 0
	TotalBills      int             `json:"totalTransactions"`
	AvgOrderValue   decimal.Decimal `json:"avgOrderValue"`

	Monthly   []MonthlyBreakdown `json:"monthlyData"`
	Payments  []PaymentSlice     `json:"paymentData"`
	TopBuyers []BuyerSpend       `json:"topBuyers"`
	Daily     []DailyPoint       `json:"dailyChartData"`
}

type MonthlyBreakdown struct {
	Month        string          `json:"month"` // "Jan 2006"
	Revenue      decimal.Decimal `json:"revenue"`
	Investment   decimal.Decimal `json:"investment"`
	Profit       decimal.Decimal `json:"profit"`
	Transactions int             `json:"transactions"`
}

type PaymentSlice struct {
	Name  string          `json:"name"` // "Cash" | "Online"
	Value decimal.Decimal `json:"value"`
}

type BuyerSpend struct {
	Name         string          `json:"name"`
	Spent        decimal.Decimal `json:"spent"`
	Transactions int             `json:"transactions"`
}

type DailyPoint struct {
	Date         string          `json:"date"` // "2006-01-02"
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
	Transactions int             `json:"transactions"`
}

const topBuyerLimit = 8

// Overview computes the headline metrics plus the chart series. An empty
// input yields a zeroed Metrics value, never an error.
func Overview(txs []models.Transaction) Metrics {
	var m Metrics

	for _, t := range txs {
		m.TotalRevenue = m.TotalRevenue.Add(t.SellingPrice.Mul(t.Quantity))
		m.TotalInvestment = m.TotalInvestment.Add(t.CostPrice.Mul(t.Quantity))
	}
	m.TotalProfit = m.TotalRevenue.Sub(m.TotalInvestment)

	// Paid amounts are stored redundantly per line; count one line per bill.
	seenBill := make(map[string]bool)
	for _, t := range txs {
		if seenBill[t.BillNo] {
			continue
		}
		seenBill[t.BillNo] = true
		m.TotalPaid = m.TotalPaid.Add(t.PaidCash).Add(t.PaidOnline)
	}
	m.TotalPending = m.TotalRevenue.Sub(m.TotalPaid)
	m.TotalBills = len(seenBill)

	if m.TotalRevenue.IsPositive() {
		profit, _ := m.TotalProfit.Float64()
		revenue, _ := m.TotalRevenue.Float64()
		m.ProfitMargin = utils.Round2(profit / revenue * 100)
	}
	if m.TotalBills > 0 {
		m.AvgOrderValue = m.TotalRevenue.Div(decimal.NewFromInt(int64(m.TotalBills))).Round(2)
	}

	m.Monthly = monthlyBreakdown(txs)
	m.Payments = paymentSplit(txs)
	m.TopBuyers = topBuyers(txs)
	m.Daily = dailySeries(txs)
	return m
}

func monthlyBreakdown(txs []models.Transaction) []MonthlyBreakdown {
	order := make([]string, 0)
	byMonth := make(map[string]*MonthlyBreakdown)
	for _, t := range txs {
		label := t.Date.Format("Jan 2006")
		mb, ok := byMonth[label]
		if !ok {
			mb = &MonthlyBreakdown{Month: label}
			byMonth[label] = mb
			order = append(order, label)
		}
		revenue := t.SellingPrice.Mul(t.Quantity)
		investment := t.CostPrice.Mul(t.Quantity)
		mb.Revenue = mb.Revenue.Add(revenue)
		mb.Investment = mb.Investment.Add(investment)
		mb.Profit = mb.Profit.Add(revenue.Sub(investment))
		mb.Transactions++
	}
	out := make([]MonthlyBreakdown, 0, len(order))
	for _, label := range order {
		out = append(out, *byMonth[label])
	}
	return out
}

func paymentSplit(txs []models.Transaction) []PaymentSlice {
	var cash, online decimal.Decimal
	seenBill := make(map[string]bool)
	for _, t := range txs {
		if seenBill[t.BillNo] {
			continue
		}
		seenBill[t.BillNo] = true
		cash = cash.Add(t.PaidCash)
		online = online.Add(t.PaidOnline)
	}
	return []PaymentSlice{
		{Name: "Cash", Value: cash},
		{Name: "Online", Value: online},
	}
}

func topBuyers(txs []models.Transaction) []BuyerSpend {
	order := make([]string, 0)
	byBuyer := make(map[string]*BuyerSpend)
	for _, t := range txs {
		buyer := t.Buyer
		if buyer == "" {
			buyer = UnknownBuyer
		}
		bs, ok := byBuyer[buyer]
		if !ok {
			bs = &BuyerSpend{Name: buyer}
			byBuyer[buyer] = bs
			order = append(order, buyer)
		}
		bs.Spent = bs.Spent.Add(t.SellingPrice.Mul(t.Quantity))
		bs.Transactions++
	}

	out := make([]BuyerSpend, 0, len(order))
	for _, buyer := range order {
		out = append(out, *byBuyer[buyer])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Spent.GreaterThan(out[j].Spent)
	})
	if len(out) > topBuyerLimit {
		out = out[:topBuyerLimit]
	}
	for i := range out {
		// Truncate on runes so multibyte names stay valid UTF-8.
		if r := []rune(out[i].Name); len(r) > 15 {
			out[i].Name = string(r[:15]) + "..."
		}
	}
	return out
}

func dailySeries(txs []models.Transaction) []DailyPoint {
	byDay := make(map[string]*DailyPoint)
	for _, t := range txs {
		day := t.Date.Format(time.DateOnly)
		dp, ok := byDay[day]
		if !ok {
			dp = &DailyPoint{Date: day}
			byDay[day] = dp
		}
		revenue := t.SellingPrice.Mul(t.Quantity)
		dp.Revenue = dp.Revenue.Add(revenue)
		dp.Profit = dp.Profit.Add(revenue.Sub(t.CostPrice.Mul(t.Quantity)))
		dp.Transactions++
	}

	out := make([]DailyPoint, 0, len(byDay))
	for _, dp := range byDay {
		out = append(out, *dp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if len(out) > 30 {
		out = out[len(out)-30:]
	}
	return out
}
