package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"comms_governance/internal/domain/communication"
)

// Success Response without a custom code (default 200)
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return SuccessWithCode(c, fiber.StatusOK, message, data)
}

// SuccessWithCode is used e.g. for 201 on creation.
func SuccessWithCode(c *fiber.Ctx, code int, message string, data interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
	})
}

// ErrorWithDetails carries per-field errors.
func ErrorWithDetails(c *fiber.Ctx, code int, message string, errs interface{}) error {
	return c.Status(code).JSON(fiber.Map{
		"code":    code,
		"status":  "error",
		"message": message,
		"errors":  errs,
	})
}

// ValidationError answers 400 with the offending fields of a rejected entry.
func ValidationError(c *fiber.Ctx, err error) error {
	var verr *communication.ValidationError
	if !errors.As(err, &verr) {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}
	return ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", verr.Fields)
}

// errorHandler renders errors returned by handlers, fiber's own included, in the envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	return Error(c, code, message)
}
