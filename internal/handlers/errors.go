package handlers

import (
	"errors"
	"fmt"

	"kiosk/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// errorStatus maps the service error taxonomy to HTTP statuses.
// Anything outside the taxonomy is an internal error.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the standard error body. Internal errors keep their
// detail out of the response; the caller gets the generic message only.
func fail(c *fiber.Ctx, err error, message string) error {
	status := errorStatus(err)
	body := fiber.Map{"message": message}
	if status != fiber.StatusInternalServerError {
		body["error"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// failValidation writes a 400 with per-field messages from validator.
func failValidation(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"error":   err.Error(),
	})
}
