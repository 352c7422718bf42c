package models

import (
	"dentalbooks/internal/domain/calc"
	"dentalbooks/internal/validation"
)

// Scales of the numeric columns. Inputs finer than these would be rounded by
// postgres and no longer match the stored result snapshot.
const (
	MoneyScale   int32 = 2 // numeric(14,2)
	PercentScale int32 = 4 // numeric(7,4)
)

func scaleError(v *validation.Validator) error {
	if v.Valid() {
		return nil
	}
	return &calc.InvalidInputError{Fields: v.Errors}
}

// CheckScale rejects amounts with more decimal places than their columns hold.
func (in IncomeEntryInput) CheckScale() error {
	v := validation.New()
	v.Scale("gross_patient_fee", in.GrossPatientFee, MoneyScale)
	v.Scale("lab_fee", in.LabFee, MoneyScale)
	v.Scale("gst_on_lab_fee", in.GSTOnLabFee, MoneyScale)
	v.Scale("merchant_fee_inc_gst", in.MerchantFeeIncGST, MoneyScale)
	v.Scale("bank_fee", in.BankFee, MoneyScale)
	return scaleError(v)
}

func (in ExpenseEntryInput) CheckScale() error {
	v := validation.New()
	v.Scale("amount", in.Amount, MoneyScale)
	v.Scale("business_use_percent", in.BusinessUsePercent, PercentScale)
	return scaleError(v)
}

func (in ExpenseHeadInput) CheckScale() error {
	v := validation.New()
	v.Scale("gst_percentage", in.GSTPercentage, PercentScale)
	return scaleError(v)
}
