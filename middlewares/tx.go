package middlewares

import (
	"strings"

	"khata-backend/database"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestTx opens a per-request DB transaction for mutating methods. The sale
// rows and every stock adjustment they trigger commit or roll back together;
// there is no partially-applied sale.
func RequestTx() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch && method != fiber.MethodDelete {
			return c.Next()
		}

		tx := database.DB.Begin()
		if tx.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to begin transaction")
		}

		// Ensure we always cleanup.
		defer func() {
			if r := recover(); r != nil {
				_ = tx.Rollback()
				panic(r) // re-panic after rollback so Fiber's handler can catch
			}
			if err != nil {
				_ = tx.Rollback()
				return
			}
			if e := tx.Commit().Error; e != nil {
				zap.L().Error("tx commit failed", zap.Error(e))
				err = fiber.NewError(fiber.StatusInternalServerError, "transaction commit failed")
			}
		}()

		// Make the TX available to handlers via database.FromCtx(c).
		c.Locals("tx", tx)

		// Run the handler chain inside this TX.
		err = c.Next()
		return err
	}
}
