package middlewares

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// BindAndValidate parses the JSON body into dst and validates it. Parse
// failures map to 400; validation failures surface as
// validator.ValidationErrors, which ErrorHandler turns into a 422 with
// per-field tags. Line-item slices are covered by `dive` tags on the DTOs.
func BindAndValidate(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return validate.Struct(dst)
}
