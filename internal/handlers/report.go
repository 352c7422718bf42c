package handlers

import (
	"dentalbooks/internal/services/report"
	"dentalbooks/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// BAS totals the clinic's BAS fields for ?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *ReportHandler) BAS(c *fiber.Ctx) error {
	claims, clinicID, err := clinicScope(c)
	if err != nil {
		return response.FromError(c, err)
	}
	period, err := periodQuery(c)
	if err != nil {
		return response.FromError(c, err)
	}

	r, err := h.reportService.BAS(c.UserContext(), claims, clinicID, period)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "BAS report", r)
}
