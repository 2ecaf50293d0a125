package database

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FromCtx returns the *gorm.DB bound to the request. Prefer the per-request
// TX opened by middlewares.RequestTx; read-only routes fall back to a plain
// session on the shared connection.
func FromCtx(c *fiber.Ctx) (*gorm.DB, error) {
	if v := c.Locals("tx"); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx, nil
		}
	}
	if DB == nil {
		return nil, errors.New("database not initialized")
	}
	return DB.Session(&gorm.Session{}), nil
}
