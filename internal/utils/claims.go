package utils

import (
	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ClaimsLocal is the fiber local the auth middleware stores the session under.
const ClaimsLocal = "claims"

// SessionClaims returns the authenticated session, or ErrInvalidToken when the
// request never passed the auth middleware.
func SessionClaims(c *fiber.Ctx) (*models.UserClaims, error) {
	claims, ok := c.Locals(ClaimsLocal).(*models.UserClaims)
	if !ok || claims == nil {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
