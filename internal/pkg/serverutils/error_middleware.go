package serverutils

import (
	"errors"

	"pdf-knowledge-be/internal/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware catches every error a handler returns and renders a
// JSON {"error": ...} body. Nothing propagates as a panic or a bare 500 page.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return ctx.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		return ctx.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
}
