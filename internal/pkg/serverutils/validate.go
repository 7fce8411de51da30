package serverutils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and converts failures into a 400
// so the error middleware renders them as a client error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Validation failed on field '"+verrs[0].Field()+"'")
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
