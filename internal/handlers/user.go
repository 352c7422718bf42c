package handlers

import (
	"dentalbooks/internal/models"
	"dentalbooks/internal/services/user"
	"dentalbooks/internal/utils/pagination"
	"dentalbooks/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	u, err := h.userService.Me(c.UserContext(), claims)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profile retrieved", u)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input models.UpdateUserInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	u, err := h.userService.UpdateProfile(c.UserContext(), claims, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profile updated", u)
}

// DeleteAccount removes the caller's account once they own no clinics.
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	if err := h.userService.Delete(c.UserContext(), claims); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListUsers is the admin view of every account.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	p := pagination.ParseFromRequest(c)
	users, total, err := h.userService.List(c.UserContext(), claims, p.Offset, p.Limit)
	if err != nil {
		return response.FromError(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, users))
}
