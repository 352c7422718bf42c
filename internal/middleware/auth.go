// Package middleware provides HTTP middleware components for the application.
// It includes authentication and authorization middleware for the fiber web
// framework.
package middleware

import (
	"log"
	"strings"

	"dentalbooks/internal/services/auth"
	"dentalbooks/internal/utils"
	"dentalbooks/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AccessTokenCookie is the cookie browsers send the access token in.
const AccessTokenCookie = "access_token"

// AuthMiddleware resolves the request's access token into a session and
// stores it under utils.ClaimsLocal.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler validates JWT tokens and adds claims to the request context.
// It checks for:
// - a Bearer token in the Authorization header, or the access_token cookie
// - valid signature, issuer and expiry
// - a token version matching the user's current one
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	tokenString := bearerToken(c)
	if tokenString == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization token"})
	}

	claims, err := m.authService.Authenticate(c.UserContext(), tokenString)
	if err != nil {
		return response.FromError(c, err)
	}

	c.Locals(utils.ClaimsLocal, claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

func bearerToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		if !strings.HasPrefix(header, "Bearer ") {
			log.Println("Invalid Authorization format")
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Cookies(AccessTokenCookie)
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, err := utils.SessionClaims(c)
	if err != nil {
		log.Println("Claims not found in context")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid claims"})
	}

	if !claims.IsAdmin() {
		log.Printf("Access denied: user %d has role %s, not admin", claims.UserID, claims.Role)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.SessionClaims(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		// If user is admin, allow all permissions
		if claims.IsAdmin() || claims.HasPermission(permission) {
			return c.Next()
		}

		log.Printf("User %d lacks permission %s", claims.UserID, permission)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}
