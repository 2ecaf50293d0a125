package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"khata-backend/database"
	"khata-backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSONKeyed(t *testing.T, app *fiber.App, method, path, key string, body any) (int, []byte) {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", key)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func TestCreateSale_ReplayedKeyDeductsStockOnce(t *testing.T) {
	app := newApp(t)
	seedCement(t, 100)

	body := saleBody("B800", 5)
	status1, resp1 := doJSONKeyed(t, app, fiber.MethodPost, "/api/expenses", "key-b800", body)
	require.Equal(t, fiber.StatusCreated, status1)
	assert.True(t, cementQty(t).Equal(decimal.NewFromInt(95)))

	status2, resp2 := doJSONKeyed(t, app, fiber.MethodPost, "/api/expenses", "key-b800", body)
	require.Equal(t, fiber.StatusCreated, status2, "replay re-sends the stored status")
	assert.JSONEq(t, string(resp1), string(resp2), "replay re-sends the stored body")

	assert.True(t, cementQty(t).Equal(decimal.NewFromInt(95)),
		"handler did not run again, stock is deducted once")
	var count int64
	database.DB.Model(&models.Transaction{}).Where("bill_no = ?", "B800").Count(&count)
	assert.EqualValues(t, 1, count, "no duplicate sale rows")
}

func TestCreateSale_KeyReuseWithDifferentBodyConflicts(t *testing.T) {
	app := newApp(t)
	seedCement(t, 100)

	status, _ := doJSONKeyed(t, app, fiber.MethodPost, "/api/expenses", "key-b900", saleBody("B900", 5))
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = doJSONKeyed(t, app, fiber.MethodPost, "/api/expenses", "key-b900", saleBody("B901", 2))
	assert.Equal(t, fiber.StatusConflict, status)

	var count int64
	database.DB.Model(&models.Transaction{}).Where("bill_no = ?", "B901").Count(&count)
	assert.Zero(t, count, "conflicting request never reaches the handler")
	assert.True(t, cementQty(t).Equal(decimal.NewFromInt(95)))
}
