package handlers

import (
	"dentalbooks/internal/models"
	"dentalbooks/internal/services/clinic"
	"dentalbooks/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ClinicHandler struct {
	clinicService clinic.Service
}

func NewClinicHandler(clinicService clinic.Service) *ClinicHandler {
	return &ClinicHandler{clinicService: clinicService}
}

func (h *ClinicHandler) Create(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	var input models.ClinicInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	cl, err := h.clinicService.Create(c.UserContext(), claims, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Clinic created", cl)
}

func (h *ClinicHandler) List(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	clinics, err := h.clinicService.List(c.UserContext(), claims)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Clinics retrieved", clinics)
}

func (h *ClinicHandler) Get(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id, err := idParam(c, "clinicID")
	if err != nil {
		return response.FromError(c, err)
	}

	cl, err := h.clinicService.Owned(c.UserContext(), claims, id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Clinic retrieved", cl)
}

func (h *ClinicHandler) Update(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id, err := idParam(c, "clinicID")
	if err != nil {
		return response.FromError(c, err)
	}
	var input models.ClinicInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	cl, err := h.clinicService.Update(c.UserContext(), claims, id, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Clinic updated", cl)
}

func (h *ClinicHandler) Delete(c *fiber.Ctx) error {
	claims, err := session(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	id, err := idParam(c, "clinicID")
	if err != nil {
		return response.FromError(c, err)
	}

	if err := h.clinicService.Delete(c.UserContext(), claims, id); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
