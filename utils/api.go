package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/tuyensinh/admission-advisor/database"
	"github.com/tuyensinh/admission-advisor/utils/response"
)

// MakeHTTPHandleFunc binds a store-aware handler to a plain Fiber handler
func MakeHTTPHandleFunc(handler func(c *fiber.Ctx, store database.Storage) error, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			return response.InternalServerError(c, err.Error())
		}
		return nil
	}
}
