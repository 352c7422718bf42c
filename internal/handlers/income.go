package handlers

import (
	"dentalbooks/internal/models"
	"dentalbooks/internal/services/income"
	"dentalbooks/internal/utils/pagination"
	"dentalbooks/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type IncomeHandler struct {
	incomeService income.Service
}

func NewIncomeHandler(incomeService income.Service) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

func (h *IncomeHandler) Create(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var input models.IncomeEntryInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	e, err := h.incomeService.Create(c.UserContext(), claims, clinicID, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Income entry recorded", e)
}

// List pages through entries, optionally bounded by ?from= and ?to=.
func (h *IncomeHandler) List(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	period, err := periodQuery(c)
	if err != nil {
		return response.FromError(c, err)
	}

	p := pagination.ParseFromRequest(c)
	entries, total, err := h.incomeService.List(c.UserContext(), claims, clinicID, period, p.Offset, p.Limit)
	if err != nil {
		return response.FromError(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, entries))
}

func (h *IncomeHandler) Get(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "entryID")
	if err != nil {
		return response.FromError(c, err)
	}

	e, err := h.incomeService.Get(c.UserContext(), claims, clinicID, id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Income entry retrieved", e)
}

// GetByReference looks an entry up by its booking reference.
func (h *IncomeHandler) GetByReference(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}

	e, err := h.incomeService.GetByReference(c.UserContext(), claims, clinicID, c.Params("reference"))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Income entry retrieved", e)
}

func (h *IncomeHandler) Update(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "entryID")
	if err != nil {
		return response.FromError(c, err)
	}
	var input models.IncomeEntryInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	e, err := h.incomeService.Update(c.UserContext(), claims, clinicID, id, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Income entry updated", e)
}

func (h *IncomeHandler) Delete(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "entryID")
	if err != nil {
		return response.FromError(c, err)
	}

	if err := h.incomeService.Delete(c.UserContext(), claims, clinicID, id); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
