package handlers

import (
	"dentalbooks/internal/models"
	"dentalbooks/internal/services/expense"
	"dentalbooks/internal/utils/pagination"
	"dentalbooks/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ExpenseHandler struct {
	expenseService expense.Service
}

func NewExpenseHandler(expenseService expense.Service) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) CreateHead(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var input models.ExpenseHeadInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	head, err := h.expenseService.CreateHead(c.UserContext(), claims, clinicID, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Expense head created", head)
}

func (h *ExpenseHandler) ListHeads(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}

	heads, err := h.expenseService.ListHeads(c.UserContext(), claims, clinicID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense heads retrieved", heads)
}

func (h *ExpenseHandler) GetHead(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "headID")
	if err != nil {
		return response.FromError(c, err)
	}

	head, err := h.expenseService.GetHead(c.UserContext(), claims, clinicID, id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense head retrieved", head)
}

func (h *ExpenseHandler) UpdateHead(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "headID")
	if err != nil {
		return response.FromError(c, err)
	}
	var input models.ExpenseHeadInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	head, err := h.expenseService.UpdateHead(c.UserContext(), claims, clinicID, id, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense head updated", head)
}

func (h *ExpenseHandler) DeleteHead(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "headID")
	if err != nil {
		return response.FromError(c, err)
	}

	if err := h.expenseService.DeleteHead(c.UserContext(), claims, clinicID, id); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ExpenseHandler) CreateEntry(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	var input models.ExpenseEntryInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	e, err := h.expenseService.CreateEntry(c.UserContext(), claims, clinicID, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Created(c, "Expense recorded", e)
}

func (h *ExpenseHandler) ListEntries(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	period, err := periodQuery(c)
	if err != nil {
		return response.FromError(c, err)
	}

	p := pagination.ParseFromRequest(c)
	entries, total, err := h.expenseService.ListEntries(c.UserContext(), claims, clinicID, period, p.Offset, p.Limit)
	if err != nil {
		return response.FromError(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, entries))
}

func (h *ExpenseHandler) GetEntry(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "entryID")
	if err != nil {
		return response.FromError(c, err)
	}

	e, err := h.expenseService.GetEntry(c.UserContext(), claims, clinicID, id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense retrieved", e)
}

func (h *ExpenseHandler) UpdateEntry(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "entryID")
	if err != nil {
		return response.FromError(c, err)
	}
	var input models.ExpenseEntryInput
	if handled, err := bind(c, &input); handled {
		return err
	}

	e, err := h.expenseService.UpdateEntry(c.UserContext(), claims, clinicID, id, &input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense updated", e)
}

func (h *ExpenseHandler) DeleteEntry(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	id, err := idParam(c, "entryID")
	if err != nil {
		return response.FromError(c, err)
	}

	if err := h.expenseService.DeleteEntry(c.UserContext(), claims, clinicID, id); err != nil {
		return response.FromError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
