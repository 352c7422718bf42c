package models

import (
	"encoding/json"
	"time"

	"dentalbooks/internal/domain/calc"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExpenseHead struct {
	gorm.Model
	ClinicID      uint            `gorm:"index;not null" json:"clinic_id"`
	Name          string          `gorm:"not null" json:"name"`
	GSTApplicable bool            `json:"gst_applicable"`
	GSTPercentage decimal.Decimal `gorm:"type:numeric(7,4);not null;default:0" json:"gst_percentage"`
	GSTType       calc.GSTType    `gorm:"type:varchar(10)" json:"gst_type,omitempty"`
}

type ExpenseHeadInput struct {
	Name          string           `json:"name" validate:"required,max=120"`
	GSTApplicable bool             `json:"gst_applicable"`
	GSTPercentage *decimal.Decimal `json:"gst_percentage"`
	GSTType       calc.GSTType     `json:"gst_type" validate:"omitempty,oneof=INCLUSIVE EXCLUSIVE"`
}

func (in ExpenseHeadInput) Apply(h *ExpenseHead) {
	h.Name = in.Name
	h.GSTApplicable = in.GSTApplicable
	h.GSTPercentage = decimal.Zero
	h.GSTType = ""
	if in.GSTApplicable {
		if in.GSTPercentage != nil {
			h.GSTPercentage = *in.GSTPercentage
		}
		h.GSTType = in.GSTType
	}
}

// CalcHead converts the head for the calculator.
func (h *ExpenseHead) CalcHead() calc.ExpenseHead {
	return calc.ExpenseHead{
		GSTApplicable: h.GSTApplicable,
		GSTPercentage: h.GSTPercentage,
		GSTType:       h.GSTType,
	}
}

type ExpenseEntry struct {
	gorm.Model
	ClinicID           uint             `gorm:"index;not null" json:"clinic_id"`
	HeadID             uint             `gorm:"index;not null" json:"head_id"`
	EntryDate          time.Time        `gorm:"type:date;index;not null" json:"entry_date"`
	Description        string           `json:"description"`
	Amount             decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	BusinessUsePercent *decimal.Decimal `gorm:"type:numeric(7,4)" json:"business_use_percent,omitempty"`
	Result             datatypes.JSON   `gorm:"type:jsonb" json:"result"`
}

type ExpenseEntryInput struct {
	HeadID             uint             `json:"head_id" validate:"required"`
	EntryDate          string           `json:"entry_date" validate:"required,datetime=2006-01-02"`
	Description        string           `json:"description" validate:"max=500"`
	Amount             *decimal.Decimal `json:"amount" validate:"required"`
	BusinessUsePercent *decimal.Decimal `json:"business_use_percent"`
}

// Apply copies the input onto e. EntryDate must already be validated.
func (in ExpenseEntryInput) Apply(e *ExpenseEntry) {
	e.HeadID = in.HeadID
	e.EntryDate, _ = time.Parse(DateLayout, in.EntryDate)
	e.Description = in.Description
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	e.BusinessUsePercent = in.BusinessUsePercent
}

func (e *ExpenseEntry) SetResult(res *calc.ExpenseResult) error {
	data, err := json.Marshal(res.Rounded())
	if err != nil {
		return err
	}
	e.Result = datatypes.JSON(data)
	return nil
}

func (e *ExpenseEntry) Snapshot() (*calc.ExpenseResult, error) {
	var res calc.ExpenseResult
	if err := json.Unmarshal(e.Result, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
