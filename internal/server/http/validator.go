// FILE: internal/server/http/validator.go
package http

import (
	"fmt"
	"reflect"
	"strings"

	"chessimport/internal/server/core"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = validator.New()

// validationMiddleware parses and validates request bodies per route,
// stashing the typed result for the handler.
func validationMiddleware(c *fiber.Ctx) error {
	// Skip validation for GET, OPTIONS
	method := c.Method()
	if method == fiber.MethodGet || method == fiber.MethodOptions {
		return c.Next()
	}

	// Determine request type based on path
	path := c.Path()
	var requestType interface{}

	switch {
	case strings.HasSuffix(path, "/games/import/batch") && method == fiber.MethodPost:
		requestType = &core.ImportBatchRequest{}
	case strings.HasSuffix(path, "/games/import") && method == fiber.MethodPost:
		requestType = &core.ImportGameRequest{}
	default:
		return c.Next() // No validation for unknown endpoints
	}

	// Parse body
	if err := c.BodyParser(requestType); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid request body",
			Code:    core.ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	// Validate
	if errs := validate.Struct(requestType); errs != nil {
		var details strings.Builder
		for _, err := range errs.(validator.ValidationErrors) {
			if details.Len() > 0 {
				details.WriteString("; ")
			}
			switch err.Tag() {
			case "required":
				details.WriteString(fmt.Sprintf("%s is required", err.Field()))
			case "min":
				if err.Type().Kind() == reflect.String {
					details.WriteString(fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param()))
				} else {
					details.WriteString(fmt.Sprintf("%s must have at least %s items", err.Field(), err.Param()))
				}
			case "max":
				if err.Type().Kind() == reflect.String {
					details.WriteString(fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
				} else {
					details.WriteString(fmt.Sprintf("%s must have at most %s items", err.Field(), err.Param()))
				}
			default:
				details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
			}
		}

		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: details.String(),
		})
	}

	// Store validated body for handler use
	c.Locals("validatedBody", requestType)
	c.Locals("validated", true)

	return c.Next()
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
