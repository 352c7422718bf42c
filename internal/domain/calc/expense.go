package calc

import (
	"fmt"

	"dentalbooks/internal/validation"

	"github.com/shopspring/decimal"
)

// GSTType says whether a GST-applicable expense amount already includes GST.
type GSTType string

const (
	GSTInclusive GSTType = "INCLUSIVE"
	GSTExclusive GSTType = "EXCLUSIVE"
)

// Treatment is the resolved tax treatment of an expense head.
type Treatment string

const (
	TreatmentGSTFree   Treatment = "GST_FREE"
	TreatmentInclusive Treatment = "INCLUSIVE"
	TreatmentExclusive Treatment = "EXCLUSIVE"
)

// ExpenseHead is an expense category with its tax treatment. GSTPercentage and
// GSTType only matter when GSTApplicable is set.
type ExpenseHead struct {
	GSTApplicable bool            `json:"gst_applicable"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	GSTType       GSTType         `json:"gst_type,omitempty"`
}

// Treatment resolves the head's flags into a single treatment.
func (h ExpenseHead) Treatment() (Treatment, error) {
	if !h.GSTApplicable {
		return TreatmentGSTFree, nil
	}

	v := validation.New()
	v.NonNegative("gst_percentage", h.GSTPercentage)
	if err := fromValidator(v); err != nil {
		return "", err
	}

	switch h.GSTType {
	case GSTInclusive:
		return TreatmentInclusive, nil
	case GSTExclusive:
		return TreatmentExclusive, nil
	}
	return "", NewInvalidInput("gst_type", fmt.Sprintf("unrecognised GST type %q", h.GSTType))
}

// ExpenseResult is the classification of one expense amount.
type ExpenseResult struct {
	Treatment          Treatment       `json:"treatment"`
	NetAmount          decimal.Decimal `json:"net_amount"`
	GSTAmount          decimal.Decimal `json:"gst_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	GSTCredit          decimal.Decimal `json:"gst_credit"`
	BusinessUsePercent decimal.Decimal `json:"business_use_percent"`
	BAS                BAS             `json:"bas"`
}

// Rounded returns a copy with every amount rounded to 2dp.
func (r *ExpenseResult) Rounded() *ExpenseResult {
	out := *r
	out.NetAmount = r.NetAmount.Round(2)
	out.GSTAmount = r.GSTAmount.Round(2)
	out.TotalAmount = r.TotalAmount.Round(2)
	out.GSTCredit = r.GSTCredit.Round(2)
	out.BAS = r.BAS.Rounded()
	return &out
}

// Classify splits amount into net and GST parts under head. A nil
// businessUsePercent means 100.
func Classify(amount decimal.Decimal, head ExpenseHead, businessUsePercent *decimal.Decimal) (*ExpenseResult, error) {
	v := validation.New()
	v.NonNegative("amount", amount)
	if businessUsePercent != nil {
		v.Percent("business_use_percent", *businessUsePercent)
	}
	if err := fromValidator(v); err != nil {
		return nil, err
	}

	treatment, err := head.Treatment()
	if err != nil {
		return nil, err
	}

	r := &ExpenseResult{Treatment: treatment, BusinessUsePercent: hundred}
	rate := head.GSTPercentage.Div(hundred)

	switch treatment {
	case TreatmentGSTFree:
		r.NetAmount = amount
		r.GSTAmount = decimal.Zero
		r.TotalAmount = amount
	case TreatmentExclusive:
		r.NetAmount = amount
		r.GSTAmount = amount.Mul(rate)
		r.TotalAmount = r.NetAmount.Add(r.GSTAmount)
	case TreatmentInclusive:
		r.TotalAmount = amount
		r.NetAmount = amount.Div(decimal.NewFromInt(1).Add(rate))
		r.GSTAmount = r.TotalAmount.Sub(r.NetAmount)
	}
	r.GSTCredit = r.GSTAmount
	r.BAS = BAS{
		BASClinicExpenses: r.TotalAmount,
		BASGSTCredit:      r.GSTAmount,
	}

	if businessUsePercent != nil {
		factor := businessUsePercent.Div(hundred)
		r.BusinessUsePercent = *businessUsePercent
		r.NetAmount = r.NetAmount.Mul(factor)
		r.GSTAmount = r.GSTAmount.Mul(factor)
		r.TotalAmount = r.TotalAmount.Mul(factor)
		r.GSTCredit = r.GSTCredit.Mul(factor)
		r.BAS = r.BAS.Scaled(factor)
	}

	return r, nil
}
