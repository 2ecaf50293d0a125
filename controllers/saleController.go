package controllers

import (
	"strings"
	"time"

	"khata-backend/database"
	"khata-backend/middlewares"
	"khata-backend/models"
	"khata-backend/reconcile"
	"khata-backend/reports"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type SaleLineInput struct {
	LineID       string          `json:"line_id"` // present when editing an existing line
	Item         string          `json:"item" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"required"`
	CostPrice    decimal.Decimal `json:"costPrice"`
	SellingPrice decimal.Decimal `json:"sellingPrice"`
}

type SaleInput struct {
	Date       time.Time       `json:"date"`
	BillNo     string          `json:"billno" validate:"required"`
	Buyer      string          `json:"buyer"`
	Notes      string          `json:"notes"`
	PaidCash   decimal.Decimal `json:"paidCash"`
	PaidOnline decimal.Decimal `json:"paidOnline"`
	Items      []SaleLineInput `json:"items" validate:"required,min=1,dive"`
}

// CreateSale persists all line items of one bill and deducts the sold
// quantities from stock, in a single transaction.
func CreateSale(c *fiber.Ctx) error {
	var input SaleInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tx, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	lines := make([]models.Transaction, 0, len(input.Items))
	for _, item := range input.Items {
		lines = append(lines, models.Transaction{
			Date:         date,
			BillNo:       strings.TrimSpace(input.BillNo),
			Item:         strings.TrimSpace(item.Item),
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			CostPrice:    item.CostPrice,
			SellingPrice: item.SellingPrice,
			// Bill-level paid totals, stamped identically on every line.
			PaidCash:   input.PaidCash,
			PaidOnline: input.PaidOnline,
			Buyer:      strings.TrimSpace(input.Buyer),
			Notes:      strings.TrimSpace(input.Notes),
		})
	}

	if err := tx.Create(&lines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not save entries")
	}

	rl := reconcile.LinesFromTransactions(lines)
	if err := reconcile.Apply(tx, reconcile.ActionCreate, lines[0].BillNo, rl, reconcile.CreateDeltas(rl)); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "entries saved",
		"entries": lines,
	})
}

// GetTransactions lists line items newest-first. An optional q keeps whole
// bills where any line's item name or the bill number matches; billno narrows
// to one bill.
func GetTransactions(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var txs []models.Transaction
	query := db.Model(&models.Transaction{}).Order("created_at DESC")
	if billNo := strings.TrimSpace(c.Query("billno")); billNo != "" {
		query = query.Where("bill_no = ?", billNo)
	}
	if err := query.Find(&txs).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch entries")
	}

	if q := c.Query("q"); q != "" {
		txs = reports.Flatten(reports.FilterBills(reports.GroupBills(txs), q))
	}
	return c.JSON(txs)
}

// EditSale replaces the line set of one bill and reconciles stock by the
// per-line quantity change. Lines are matched by line_id: an echoed id is an
// update, a missing id a removal, an absent id a brand-new line.
func EditSale(c *fiber.Ctx) error {
	billNo := strings.TrimSpace(c.Params("billno"))

	var input SaleInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tx, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var oldLines []models.Transaction
	if err := tx.Where("bill_no = ?", billNo).Order("id").Find(&oldLines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch entries")
	}
	if len(oldLines) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "bill not found")
	}

	date := input.Date
	if date.IsZero() {
		date = oldLines[0].Date
	}

	keep := make(map[string]bool, len(input.Items))
	newLines := make([]models.Transaction, 0, len(input.Items))
	for _, item := range input.Items {
		line := models.Transaction{
			LineID:       item.LineID,
			Date:         date,
			BillNo:       billNo,
			Item:         strings.TrimSpace(item.Item),
			Quantity:     item.Quantity,
			Unit:         item.Unit,
			CostPrice:    item.CostPrice,
			SellingPrice: item.SellingPrice,
			PaidCash:     input.PaidCash,
			PaidOnline:   input.PaidOnline,
			Buyer:        strings.TrimSpace(input.Buyer),
			Notes:        strings.TrimSpace(input.Notes),
		}

		if item.LineID != "" {
			keep[item.LineID] = true
			res := tx.Model(&models.Transaction{}).
				Where("line_id = ? AND bill_no = ?", item.LineID, billNo).
				Updates(map[string]any{
					"date":          line.Date,
					"item":          line.Item,
					"quantity":      line.Quantity,
					"unit":          line.Unit,
					"cost_price":    line.CostPrice,
					"selling_price": line.SellingPrice,
					"paid_cash":     line.PaidCash,
					"paid_online":   line.PaidOnline,
					"buyer":         line.Buyer,
					"notes":         line.Notes,
				})
			if res.Error != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not update entries")
			}
			if res.RowsAffected == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "unknown line id for this bill")
			}
		} else {
			if err := tx.Create(&line).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not save entries")
			}
		}
		newLines = append(newLines, line)
	}

	// Drop lines the edit removed.
	for _, ol := range oldLines {
		if keep[ol.LineID] {
			continue
		}
		if err := tx.Where("line_id = ?", ol.LineID).Delete(&models.Transaction{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update entries")
		}
	}

	oldRL := reconcile.LinesFromTransactions(oldLines)
	newRL := reconcile.LinesFromTransactions(newLines)
	if err := reconcile.Apply(tx, reconcile.ActionEdit, billNo, newRL, reconcile.EditDeltas(oldRL, newRL)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "entries updated",
		"entries": newLines,
	})
}

// DeleteSale removes all line items of one bill and returns the sold
// quantities to stock, using the pre-deletion snapshot.
func DeleteSale(c *fiber.Ctx) error {
	billNo := strings.TrimSpace(c.Params("billno"))

	tx, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var lines []models.Transaction
	if err := tx.Where("bill_no = ?", billNo).Find(&lines).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch entries")
	}
	if len(lines) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "bill not found")
	}

	if err := tx.Where("bill_no = ?", billNo).Delete(&models.Transaction{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete entries")
	}

	rl := reconcile.LinesFromTransactions(lines)
	if err := reconcile.Apply(tx, reconcile.ActionDelete, billNo, rl, reconcile.DeleteDeltas(rl)); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":      "entries deleted",
		"deletedCount": len(lines),
	})
}
