package controllers

import (
	"time"

	"khata-backend/database"
	"khata-backend/models"
	"khata-backend/reports"
	"khata-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// filteredTransactions loads every transaction and applies the period window
// from the query string (preset/start/end).
func filteredTransactions(c *fiber.Ctx, now time.Time) ([]models.Transaction, error) {
	db, err := database.FromCtx(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var txs []models.Transaction
	if err := db.Order("date").Find(&txs).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "could not fetch entries")
	}

	period := reports.ParsePeriod(c.Query("preset"))
	var start, end time.Time
	if period == reports.PeriodCustom {
		start, _ = time.Parse(time.DateOnly, c.Query("start"))
		end, _ = time.Parse(time.DateOnly, c.Query("end"))
	}
	return reports.FilterByPeriod(txs, period, start, end, now), nil
}

// GetOverview returns the business metrics for the selected period.
func GetOverview(c *fiber.Ctx) error {
	txs, err := filteredTransactions(c, time.Now())
	if err != nil {
		return err
	}
	return c.JSON(reports.Overview(txs))
}

// ExportOverview streams the business report as a CSV download.
func ExportOverview(c *fiber.Ctx) error {
	now := time.Now()
	txs, err := filteredTransactions(c, now)
	if err != nil {
		return err
	}

	doc, err := reports.OverviewCSV(txs)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not build export")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+reports.Filename("business", now)+`"`)
	return c.SendString(doc)
}

// GetPending returns per-buyer pending summaries for the selected period,
// sorted by a named key (default totalPending descending). An optional min
// query param hides buyers owing less than that amount; a malformed value
// parses as zero and applies no filter.
func GetPending(c *fiber.Ctx) error {
	txs, err := filteredTransactions(c, time.Now())
	if err != nil {
		return err
	}

	buyers := reports.PendingByBuyer(txs)
	if min := utils.ParseDecimal(c.Query("min")); min.IsPositive() {
		kept := buyers[:0]
		for _, b := range buyers {
			if b.TotalPending.GreaterThanOrEqual(min) {
				kept = append(kept, b)
			}
		}
		buyers = kept
	}
	key := c.Query("sort", "totalPending")
	dir := c.Query("dir", reports.Desc)
	reports.SortBuyerSummaries(buyers, key, dir)

	var totalPending, totalAmount decimal.Decimal
	entries := 0
	var oldest *time.Time
	for _, b := range buyers {
		totalPending = totalPending.Add(b.TotalPending)
		totalAmount = totalAmount.Add(b.TotalAmount)
		entries += b.TransactionCount
		if oldest == nil || b.OldestDate.Before(*oldest) {
			d := b.OldestDate
			oldest = &d
		}
	}

	return c.JSON(fiber.Map{
		"buyers":              buyers,
		"totalPending":        totalPending,
		"totalAmount":         totalAmount,
		"pendingEntriesCount": entries,
		"oldestPendingDate":   oldest,
	})
}

// ExportPending streams the pending report as a CSV download.
func ExportPending(c *fiber.Ctx) error {
	now := time.Now()
	txs, err := filteredTransactions(c, now)
	if err != nil {
		return err
	}

	pending := make([]reports.Bill, 0)
	for _, b := range reports.GroupBills(txs) {
		if b.Pending.IsPositive() {
			pending = append(pending, b)
		}
	}

	doc, err := reports.PendingCSV(pending)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not build export")
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+reports.Filename("pending", now)+`"`)
	return c.SendString(doc)
}
