package handlers

import (
	"dentalbooks/internal/domain/calc"
	"dentalbooks/internal/models"
	"dentalbooks/internal/services/expense"
	"dentalbooks/internal/services/income"
	"dentalbooks/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CalculatorHandler serves the stateless previews. Nothing is persisted.
type CalculatorHandler struct {
	incomeService  income.Service
	expenseService expense.Service
}

func NewCalculatorHandler(incomeService income.Service, expenseService expense.Service) *CalculatorHandler {
	return &CalculatorHandler{incomeService: incomeService, expenseService: expenseService}
}

type calculateRequest struct {
	Form  models.CalculationFormInput `json:"form"`
	Entry struct {
		GrossPatientFee   *decimal.Decimal `json:"gross_patient_fee" validate:"required"`
		LabFee            *decimal.Decimal `json:"lab_fee"`
		GSTOnLabFee       *decimal.Decimal `json:"gst_on_lab_fee"`
		MerchantFeeIncGST *decimal.Decimal `json:"merchant_fee_inc_gst"`
		BankFee           *decimal.Decimal `json:"bank_fee"`
	} `json:"entry"`
}

type classifyRequest struct {
	Amount             *decimal.Decimal `json:"amount" validate:"required"`
	GSTApplicable      bool             `json:"gst_applicable"`
	GSTPercentage      *decimal.Decimal `json:"gst_percentage"`
	GSTType            calc.GSTType     `json:"gst_type"`
	BusinessUsePercent *decimal.Decimal `json:"business_use_percent"`
}

// Calculate runs one entry through an unsaved form configuration.
func (h *CalculatorHandler) Calculate(c *fiber.Ctx) error {
	var req calculateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Form.Name == "" {
		req.Form.Name = "preview"
	}
	if err := validate.Struct(&req); err != nil {
		return response.ValidationError(c, err)
	}

	var form models.CalculationForm
	req.Form.Apply(&form)
	cfg, err := form.ToConfig()
	if err != nil {
		return response.FromError(c, err)
	}

	entry := calc.IncomeEntry{
		GrossPatientFee:   *req.Entry.GrossPatientFee,
		LabFee:            decimal.Zero,
		GSTOnLabFee:       req.Entry.GSTOnLabFee,
		MerchantFeeIncGST: req.Entry.MerchantFeeIncGST,
		BankFee:           req.Entry.BankFee,
	}
	if req.Entry.LabFee != nil {
		entry.LabFee = *req.Entry.LabFee
	}

	res, err := h.incomeService.Preview(cfg, entry)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Calculation complete", res)
}

// Classify splits an expense amount without recording it.
func (h *CalculatorHandler) Classify(c *fiber.Ctx) error {
	var req classifyRequest
	if handled, err := bind(c, &req); handled {
		return err
	}

	head := calc.ExpenseHead{GSTApplicable: req.GSTApplicable, GSTType: req.GSTType}
	if req.GSTPercentage != nil {
		head.GSTPercentage = *req.GSTPercentage
	}

	res, err := h.expenseService.Classify(*req.Amount, head, req.BusinessUsePercent)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Expense classified", res)
}
