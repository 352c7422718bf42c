package models

import (
	"time"

	"dentalbooks/internal/domain/calc"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for entry dates and report ranges.
const DateLayout = "2006-01-02"

// BASReport totals the BAS fields of a clinic's entries over a period.
type BASReport struct {
	ClinicID      uint            `json:"clinic_id"`
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	IncomeCount   int             `json:"income_count"`
	ExpenseCount  int             `json:"expense_count"`
	Income        calc.BAS        `json:"income"`
	Expenses      calc.BAS        `json:"expenses"`
	Totals        calc.BAS        `json:"totals"`
	DentistPayout decimal.Decimal `json:"dentist_payout"`
	NetGSTPayable decimal.Decimal `json:"net_gst_payable"`
}

// Period bounds a listing or report; zero values are open ends.
type Period struct {
	From time.Time
	To   time.Time
}
