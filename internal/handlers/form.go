package handlers

import (
	"dentalbooks/internal/models"
	"dentalbooks/internal/services/form"
	"dentalbooks/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type FormHandler struct {
	formService form.Service
}

func NewFormHandler(formService form.Service) *FormHandler {
	return &FormHandler{formService: formService}
}

func (h *FormHandler) Create(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var input models.CalculationFormInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	f, err := h.formService.Create(c.UserContext(), claims, clinicID, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Calculation form created", f)
}

func (h *FormHandler) List(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}

	forms, err := h.formService.List(c.UserContext(), claims, clinicID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Calculation forms retrieved", forms)
}

func (h *FormHandler) Get(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "formID")
	if err != nil {
		return response.FromError(c, err)
	}

	f, err := h.formService.Get(c.UserContext(), claims, clinicID, id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Calculation form retrieved", f)
}

func (h *FormHandler) Update(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "formID")
	if err != nil {
		return response.FromError(c, err)
	}
	var input models.CalculationFormInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	f, err := h.formService.Update(c.UserContext(), claims, clinicID, id, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Calculation form updated", f)
}

func (h *FormHandler) Delete(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "formID")
	if err != nil {
		return response.FromError(c, err)
	}

	if err := h.formService.Delete(c.UserContext(), claims, clinicID, id); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
