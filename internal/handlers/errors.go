package handlers

import (
	"errors"
	"fmt"
	"log"

	"littlelemon/internal/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError writes err with the status code of its kind. action names the failed
// operation in logs and in the body of internal errors.
func respondError(c *fiber.Ctx, err error, action string) error {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": apperr.MessageOf(err)})
	case apperr.KindUnauthorized:
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": apperr.MessageOf(err)})
	case apperr.KindForbidden:
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
	case apperr.KindNotFound:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": apperr.MessageOf(err)})
	case apperr.KindConflict:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": apperr.MessageOf(err)})
	default:
		log.Printf("Error while trying to %s: %v", action, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": fmt.Sprintf("Could not %s", action),
		})
	}
}

// badBody answers a request whose body could not be decoded.
func badBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
	})
}

// validationFailed renders validator field errors.
func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// ErrorHandler renders errors returned from handlers and middleware, including
// Fiber's own routing errors and recovered panics.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message})
	}
	return respondError(c, err, "process the request")
}

// currentUserID returns the id stored by the auth middleware, or "" for anonymous requests.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
