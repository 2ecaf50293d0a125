package controllers

import (
	"strings"

	"khata-backend/database"
	"khata-backend/middlewares"
	"khata-backend/models"
	"khata-backend/reports"
	"khata-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type StockInput struct {
	Name     string          `json:"name" validate:"required"`
	Category string          `json:"category" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Supplier string          `json:"supplier"`
	Unit     string          `json:"unit" validate:"required"`
}

type StockPatch struct {
	Name     *string          `json:"name"`
	Category *string          `json:"category"`
	Quantity *decimal.Decimal `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
	Supplier *string          `json:"supplier"`
	Unit     *string          `json:"unit"`
}

func CreateStock(c *fiber.Ctx) error {
	var input StockInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	tx, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	item := models.StockItem{
		Name:     strings.TrimSpace(input.Name),
		Category: strings.TrimSpace(input.Category),
		Quantity: input.Quantity,
		Price:    input.Price,
		Supplier: strings.TrimSpace(input.Supplier),
		Unit:     input.Unit,
	}
	if err := tx.Create(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create stock item")
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// GetStock lists stock items with optional name/category search and named-key
// sorting (default name ascending; "value" sorts by quantity×price).
func GetStock(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var items []models.StockItem
	if err := db.Order("created_at").Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch stock")
	}

	items = reports.FilterStock(items, c.Query("q"))

	key := c.Query("sort", "name")
	dir := c.Query("dir", reports.Asc)
	reports.SortStock(items, key, dir)

	return c.JSON(items)
}

// UpdateStock applies a partial update; only fields present in the payload
// are written.
func UpdateStock(c *fiber.Ctx) error {
	id := c.Params("id")

	var patch StockPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	tx, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	updates := utils.UpdatesFromPtrDTO(&patch, nil)
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	res := tx.Model(&models.StockItem{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not update stock item")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "stock item not found")
	}

	var item models.StockItem
	if err := tx.First(&item, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not fetch stock item")
	}
	return c.JSON(item)
}

// DeleteStock removes a stock item. Transactions referencing it are left
// untouched; reconciliation simply stops matching that name.
func DeleteStock(c *fiber.Ctx) error {
	id := c.Params("id")

	tx, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	res := tx.Where("id = ?", id).Delete(&models.StockItem{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete stock item")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "stock item not found")
	}
	return c.JSON(fiber.Map{"message": "stock item deleted"})
}
