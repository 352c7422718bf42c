package handlers

import (
	"log"
	"time"

	"dentalbooks/internal/config"
	"dentalbooks/internal/models"
	"dentalbooks/internal/services/auth"
	"dentalbooks/internal/utils"
	"dentalbooks/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterUser creates an account with the user role.
func (h *AuthHandler) RegisterUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	user, err := h.authService.Register(c.UserContext(), &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "User registered successfully", user)
}

// LoginUser handles user authentication and returns JWT tokens
func (h *AuthHandler) LoginUser(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if handled, err := bind(c, &input); handled {
		return err
	}

	user, tokens, err := h.authService.Login(c.UserContext(), input.Email, input.Password)
	if err != nil {
		return response.FromError(c, err)
	}

	h.setAuthCookies(c, tokens)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"expires_in":    tokens.ExpiresIn,
		"user": fiber.Map{
			"id":          user.ID,
			"email":       user.Email,
			"name":        user.Name,
			"role":        user.Role,
			"permissions": models.GetDefaultPermissions(user.Role),
		},
	})
}

// RefreshToken handles token refresh requests
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	// First try to get token from cookies
	refreshToken := c.Cookies("refresh_token")

	// If not in cookies, try request body
	if refreshToken == "" {
		var input struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.BodyParser(&input); err == nil {
			refreshToken = input.RefreshToken
		}
	}
	if refreshToken == "" {
		return response.Error(c, fiber.StatusUnauthorized, "Refresh token not provided")
	}

	tokens, err := h.authService.RefreshTokens(c.UserContext(), refreshToken)
	if err != nil {
		log.Printf("Token refresh failed: %v", err)
		return response.FromError(c, err)
	}

	h.setAuthCookies(c, tokens)

	return response.Success(c, "Tokens refreshed", tokens)
}

// LogoutUser revokes every token issued to the caller.
func (h *AuthHandler) LogoutUser(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if err := h.authService.Logout(c.UserContext(), claims); err != nil {
		return response.FromError(c, err)
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Successfully logged out", nil)
}

// ChangePassword handles password change requests
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var input struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required"`
	}
	if handled, err := bind(c, &input); handled {
		return err
	}

	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if err := h.authService.ChangePassword(c.UserContext(), claims, input.OldPassword, input.NewPassword); err != nil {
		log.Printf("Password change failed for user %d: %v", claims.UserID, err)
		return response.FromError(c, err)
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Password changed successfully, please log in again", nil)
}

func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, tokens *auth.TokenPair) {
	now := time.Now()
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    tokens.AccessToken,
		Expires:  now.Add(utils.AccessTokenTTL),
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		SameSite: "Strict",
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    tokens.RefreshToken,
		Expires:  now.Add(utils.RefreshTokenTTL),
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		SameSite: "Strict",
		Path:     "/api/refresh",
	})
}

func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  expired,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    "",
		Expires:  expired,
		HTTPOnly: true,
		Secure:   config.IsProduction(),
		Path:     "/api/refresh",
	})
}
