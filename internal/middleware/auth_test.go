package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuth struct {
	auth.Service
	mock.Mock
}

func (m *mockAuth) Authenticate(ctx context.Context, token string) (*models.UserClaims, error) {
	args := m.Called(token)
	claims, _ := args.Get(0).(*models.UserClaims)
	return claims, args.Error(1)
}

func newApp(svc auth.Service, extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := append([]fiber.Handler{NewAuthMiddleware(svc).Handler}, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		claims := c.Locals("claims").(*models.UserClaims)
		return c.JSON(fiber.Map{"user_id": claims.UserID})
	})
	app.Get("/", handlers...)
	return app
}

func TestAuthMiddleware(t *testing.T) {
	svc := new(mockAuth)
	svc.On("Authenticate", "good").Return(&models.UserClaims{UserID: 5, Role: models.RoleUser, Permissions: models.GetDefaultPermissions(models.RoleUser)}, nil)
	svc.On("Authenticate", "stale").Return(nil, apperrors.ErrSessionExpired)

	tests := []struct {
		name   string
		header string
		cookie string
		status int
	}{
		{"no token", "", "", fiber.StatusUnauthorized},
		{"bad scheme", "Basic abc", "", fiber.StatusUnauthorized},
		{"bearer", "Bearer good", "", fiber.StatusOK},
		{"cookie", "", "good", fiber.StatusOK},
		{"revoked", "Bearer stale", "", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.Header.Set("Cookie", AccessTokenCookie+"="+tt.cookie)
			}

			resp, err := newApp(svc).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestAdminAndPermissionMiddleware(t *testing.T) {
	svc := new(mockAuth)
	svc.On("Authenticate", "user").Return(&models.UserClaims{UserID: 5, Role: models.RoleUser, Permissions: models.GetDefaultPermissions(models.RoleUser)}, nil)
	svc.On("Authenticate", "admin").Return(&models.UserClaims{UserID: 1, Role: models.RoleAdmin}, nil)

	check := func(app *fiber.App, token string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp.StatusCode
	}

	adminApp := newApp(svc, AdminAuthMiddleware)
	assert.Equal(t, fiber.StatusForbidden, check(adminApp, "user"))
	assert.Equal(t, fiber.StatusOK, check(adminApp, "admin"))

	permApp := newApp(svc, HasPermission(models.PermissionReadAdmin))
	assert.Equal(t, fiber.StatusForbidden, check(permApp, "user"))
	assert.Equal(t, fiber.StatusOK, check(permApp, "admin"))

	clinicApp := newApp(svc, HasPermission(models.PermissionClinicRead))
	assert.Equal(t, fiber.StatusOK, check(clinicApp, "user"))
}
