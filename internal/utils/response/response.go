package response

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"dentalbooks/internal/domain/calc"
	apperrors "dentalbooks/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// statusByCode maps DomainError codes onto HTTP statuses. Unknown codes are 500.
var statusByCode = map[string]int{
	apperrors.ErrUserNotFound.Code:   fiber.StatusNotFound,
	apperrors.ErrClinicNotFound.Code: fiber.StatusNotFound,
	apperrors.ErrFormNotFound.Code:   fiber.StatusNotFound,
	apperrors.ErrHeadNotFound.Code:   fiber.StatusNotFound,
	apperrors.ErrEntryNotFound.Code:  fiber.StatusNotFound,

	apperrors.ErrClinicNotEmpty.Code: fiber.StatusConflict,
	apperrors.ErrFormInUse.Code:      fiber.StatusConflict,
	apperrors.ErrHeadInUse.Code:      fiber.StatusConflict,
	apperrors.ErrUserHasClinics.Code: fiber.StatusConflict,
	apperrors.ErrEmailTaken.Code:     fiber.StatusConflict,

	apperrors.ErrInvalidCredentials.Code: fiber.StatusUnauthorized,
	apperrors.ErrInvalidToken.Code:       fiber.StatusUnauthorized,
	apperrors.ErrSessionExpired.Code:     fiber.StatusUnauthorized,
	apperrors.ErrForbidden.Code:          fiber.StatusForbidden,
	apperrors.ErrWeakPassword.Code:       fiber.StatusBadRequest,

	apperrors.ErrFeeSourceNotConfigured.Code: fiber.StatusServiceUnavailable,
	apperrors.ErrFeeLookupFailed.Code:        fiber.StatusBadGateway,
}

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

// FieldErrors writes a 400 carrying one message per offending field.
func FieldErrors(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "invalid input",
		"fields": fields,
	})
}

// ValidationError turns validator/v10 failures into a field error response.
func ValidationError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return BadRequest(c, err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return FieldErrors(c, fields)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must not be more than %s characters long", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in " + fe.Param() + " format"
	}
	return "failed " + fe.Tag() + " validation"
}

// FromError writes the response matching a service error.
func FromError(c *fiber.Ctx, err error) error {
	var inv *calc.InvalidInputError
	if errors.As(err, &inv) {
		return FieldErrors(c, inv.Fields)
	}

	var de *apperrors.DomainError
	if errors.As(err, &de) {
		if status, ok := statusByCode[de.Code]; ok {
			return c.Status(status).JSON(fiber.Map{
				"error": de.Message,
				"code":  de.Code,
			})
		}
	}

	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return ServerError(c, "internal server error")
}
