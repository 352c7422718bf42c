package models

import (
	"encoding/json"
	"time"

	"dentalbooks/internal/domain/calc"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// IncomeEntry is one day's or one transaction's takings recorded against a
// calculation form. Result holds the rounded calculation taken when the entry
// was last saved, so later form edits do not rewrite history.
type IncomeEntry struct {
	gorm.Model
	ClinicID    uint      `gorm:"index;not null" json:"clinic_id"`
	FormID      uint      `gorm:"index;not null" json:"form_id"`
	Reference   string    `gorm:"uniqueIndex;size:36;not null" json:"reference"`
	EntryDate   time.Time `gorm:"type:date;index;not null" json:"entry_date"`
	DentistName string    `json:"dentist_name"`

	GrossPatientFee   decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"gross_patient_fee"`
	LabFee            decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0" json:"lab_fee"`
	GSTOnLabFee       *decimal.Decimal `gorm:"type:numeric(14,2)" json:"gst_on_lab_fee,omitempty"`
	MerchantFeeIncGST *decimal.Decimal `gorm:"type:numeric(14,2)" json:"merchant_fee_inc_gst,omitempty"`
	BankFee           *decimal.Decimal `gorm:"type:numeric(14,2)" json:"bank_fee,omitempty"`
	PaymentReference  string           `json:"payment_reference,omitempty"`

	Result datatypes.JSON `gorm:"type:jsonb" json:"result"`
}

// IncomeEntryInput is the create/update payload for an income entry.
type IncomeEntryInput struct {
	FormID            uint             `json:"form_id" validate:"required"`
	EntryDate         string           `json:"entry_date" validate:"required,datetime=2006-01-02"`
	DentistName       string           `json:"dentist_name" validate:"max=120"`
	GrossPatientFee   *decimal.Decimal `json:"gross_patient_fee" validate:"required"`
	LabFee            *decimal.Decimal `json:"lab_fee"`
	GSTOnLabFee       *decimal.Decimal `json:"gst_on_lab_fee"`
	MerchantFeeIncGST *decimal.Decimal `json:"merchant_fee_inc_gst"`
	BankFee           *decimal.Decimal `json:"bank_fee"`
	PaymentReference  string           `json:"payment_reference" validate:"max=255"`
}

// Apply copies the input onto e. EntryDate must already be validated.
func (in IncomeEntryInput) Apply(e *IncomeEntry) {
	e.FormID = in.FormID
	e.EntryDate, _ = time.Parse(DateLayout, in.EntryDate)
	e.DentistName = in.DentistName
	if in.GrossPatientFee != nil {
		e.GrossPatientFee = *in.GrossPatientFee
	}
	e.LabFee = decimal.Zero
	if in.LabFee != nil {
		e.LabFee = *in.LabFee
	}
	e.GSTOnLabFee = in.GSTOnLabFee
	e.MerchantFeeIncGST = in.MerchantFeeIncGST
	e.BankFee = in.BankFee
	e.PaymentReference = in.PaymentReference
}

// CalcEntry converts the stored inputs for the calculator.
func (e *IncomeEntry) CalcEntry() calc.IncomeEntry {
	return calc.IncomeEntry{
		GrossPatientFee:   e.GrossPatientFee,
		LabFee:            e.LabFee,
		GSTOnLabFee:       e.GSTOnLabFee,
		MerchantFeeIncGST: e.MerchantFeeIncGST,
		BankFee:           e.BankFee,
	}
}

// SetResult stores the rounded form of res.
func (e *IncomeEntry) SetResult(res *calc.Result) error {
	data, err := json.Marshal(res.Rounded())
	if err != nil {
		return err
	}
	e.Result = datatypes.JSON(data)
	return nil
}

// Snapshot decodes the stored result.
func (e *IncomeEntry) Snapshot() (*calc.Result, error) {
	var res calc.Result
	if err := json.Unmarshal(e.Result, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
