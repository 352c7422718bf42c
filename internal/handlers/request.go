package handlers

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"dentalbooks/internal/domain/calc"
	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/utils"
	"dentalbooks/internal/utils/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

// newValidator reports field errors under their json names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses the JSON body into dst and validates it. On failure the error
// response has already been written and handled is true.
func bind(c *fiber.Ctx, dst interface{}) (handled bool, err error) {
	if err := c.BodyParser(dst); err != nil {
		return true, response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return true, response.ValidationError(c, err)
	}
	return false, nil
}

func session(c *fiber.Ctx) (*models.UserClaims, error) {
	return utils.SessionClaims(c)
}

// idParam parses a positive numeric route parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, calc.NewInvalidInput(name, "must be a positive integer")
	}
	return uint(id), nil
}

// periodQuery reads the optional from/to query parameters.
func periodQuery(c *fiber.Ctx) (models.Period, error) {
	var p models.Period
	for _, q := range []struct {
		name string
		dst  *time.Time
	}{{"from", &p.From}, {"to", &p.To}} {
		raw := c.Query(q.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			return models.Period{}, calc.NewInvalidInput(q.name, "must be a date in "+models.DateLayout+" format")
		}
		*q.dst = t
	}
	return p, nil
}

// clinicScope returns the session and the :clinicID route parameter.
func clinicScope(c *fiber.Ctx) (*models.UserClaims, uint, error) {
	claims, err := session(c)
	if err != nil {
		return nil, 0, apperrors.ErrInvalidToken
	}
	clinicID, err := idParam(c, "clinicID")
	if err != nil {
		return nil, 0, err
	}
	return claims, clinicID, nil
}
