package models

import (
	"fmt"

	"dentalbooks/internal/domain/calc"
	"dentalbooks/internal/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CalculationForm is a clinic's stored commission configuration. Columns for
// the branch that Method does not select must stay empty.
type CalculationForm struct {
	gorm.Model
	ClinicID uint        `gorm:"index;not null" json:"clinic_id"`
	Name     string      `gorm:"not null" json:"name"`
	Method   calc.Method `gorm:"type:varchar(10);not null" json:"method"`

	// NET
	SuperHolding           *calc.SuperHolding `gorm:"type:varchar(10)" json:"super_holding,omitempty"`
	CommissionSplitPercent *decimal.Decimal   `gorm:"type:numeric(7,4)" json:"commission_split_percent,omitempty"`
	GSTOnCommissionPercent *decimal.Decimal   `gorm:"type:numeric(7,4)" json:"gst_on_commission_percent,omitempty"`

	// GROSS
	ServiceFacilityFeePercent      *decimal.Decimal  `gorm:"type:numeric(7,4)" json:"service_facility_fee_percent,omitempty"`
	GSTOnServiceFacilityFeePercent *decimal.Decimal  `gorm:"type:numeric(7,4)" json:"gst_on_service_facility_fee_percent,omitempty"`
	LabFeePaidBy                   *calc.LabFeePayer `gorm:"type:varchar(10)" json:"lab_fee_paid_by,omitempty"`
	GSTOnLabFeeEnabled             bool              `json:"gst_on_lab_fee_enabled"`
	MerchantBankFeeEnabled         bool              `json:"merchant_bank_fee_enabled"`
	GSTOnPatientFeeEnabled         bool              `json:"gst_on_patient_fee_enabled"`
	OutworkChargeEnabled           bool              `json:"outwork_charge_enabled"`
	OutworkRatePercent             *decimal.Decimal  `gorm:"type:numeric(7,4)" json:"outwork_rate_percent,omitempty"`
	OutworkGSTEnabled              bool              `json:"outwork_gst_enabled"`
	OutworkMerchantFeePercent      *decimal.Decimal  `gorm:"type:numeric(7,4)" json:"outwork_merchant_fee_percent,omitempty"`

	LabFeeEnabled bool `json:"lab_fee_enabled"`
}

// CalculationFormInput is the create/update payload for a form.
type CalculationFormInput struct {
	Name   string      `json:"name" validate:"required,max=120"`
	Method calc.Method `json:"method" validate:"required,oneof=NET GROSS"`

	SuperHolding           *calc.SuperHolding `json:"super_holding"`
	CommissionSplitPercent *decimal.Decimal   `json:"commission_split_percent"`
	GSTOnCommissionPercent *decimal.Decimal   `json:"gst_on_commission_percent"`

	ServiceFacilityFeePercent      *decimal.Decimal  `json:"service_facility_fee_percent"`
	GSTOnServiceFacilityFeePercent *decimal.Decimal  `json:"gst_on_service_facility_fee_percent"`
	LabFeePaidBy                   *calc.LabFeePayer `json:"lab_fee_paid_by"`
	GSTOnLabFeeEnabled             bool              `json:"gst_on_lab_fee_enabled"`
	MerchantBankFeeEnabled         bool              `json:"merchant_bank_fee_enabled"`
	GSTOnPatientFeeEnabled         bool              `json:"gst_on_patient_fee_enabled"`
	OutworkChargeEnabled           bool              `json:"outwork_charge_enabled"`
	OutworkRatePercent             *decimal.Decimal  `json:"outwork_rate_percent"`
	OutworkGSTEnabled              bool              `json:"outwork_gst_enabled"`
	OutworkMerchantFeePercent      *decimal.Decimal  `json:"outwork_merchant_fee_percent"`

	LabFeeEnabled bool `json:"lab_fee_enabled"`
}

// Apply copies the input onto f.
func (in CalculationFormInput) Apply(f *CalculationForm) {
	f.Name = in.Name
	f.Method = in.Method
	f.SuperHolding = in.SuperHolding
	f.CommissionSplitPercent = in.CommissionSplitPercent
	f.GSTOnCommissionPercent = in.GSTOnCommissionPercent
	f.ServiceFacilityFeePercent = in.ServiceFacilityFeePercent
	f.GSTOnServiceFacilityFeePercent = in.GSTOnServiceFacilityFeePercent
	f.LabFeePaidBy = in.LabFeePaidBy
	f.GSTOnLabFeeEnabled = in.GSTOnLabFeeEnabled
	f.MerchantBankFeeEnabled = in.MerchantBankFeeEnabled
	f.GSTOnPatientFeeEnabled = in.GSTOnPatientFeeEnabled
	f.OutworkChargeEnabled = in.OutworkChargeEnabled
	f.OutworkRatePercent = in.OutworkRatePercent
	f.OutworkGSTEnabled = in.OutworkGSTEnabled
	f.OutworkMerchantFeePercent = in.OutworkMerchantFeePercent
	f.LabFeeEnabled = in.LabFeeEnabled
}

// ToConfig builds the calculator union from the stored columns. Missing
// required fields and fields from the other branch are rejected.
func (f *CalculationForm) ToConfig() (calc.Config, error) {
	v := validation.New()
	cfg := calc.Config{Method: f.Method}

	for _, pc := range []struct {
		field string
		value *decimal.Decimal
	}{
		{"commission_split_percent", f.CommissionSplitPercent},
		{"gst_on_commission_percent", f.GSTOnCommissionPercent},
		{"service_facility_fee_percent", f.ServiceFacilityFeePercent},
		{"gst_on_service_facility_fee_percent", f.GSTOnServiceFacilityFeePercent},
		{"outwork_rate_percent", f.OutworkRatePercent},
		{"outwork_merchant_fee_percent", f.OutworkMerchantFeePercent},
	} {
		v.Scale(pc.field, pc.value, PercentScale)
	}

	switch f.Method {
	case calc.MethodNet:
		net := &calc.NetConfig{LabFeeEnabled: f.LabFeeEnabled}
		if f.SuperHolding == nil {
			v.AddError("super_holding", "is required")
		} else {
			net.SuperHolding = *f.SuperHolding
		}
		if v.Present("commission_split_percent", f.CommissionSplitPercent) {
			net.CommissionSplitPercent = *f.CommissionSplitPercent
		}
		if v.Present("gst_on_commission_percent", f.GSTOnCommissionPercent) {
			net.GSTOnCommissionPercent = *f.GSTOnCommissionPercent
		}

		v.Check(f.ServiceFacilityFeePercent == nil, "service_facility_fee_percent", "must be empty for NET method")
		v.Check(f.GSTOnServiceFacilityFeePercent == nil, "gst_on_service_facility_fee_percent", "must be empty for NET method")
		v.Check(f.LabFeePaidBy == nil, "lab_fee_paid_by", "must be empty for NET method")
		v.Check(!f.GSTOnLabFeeEnabled, "gst_on_lab_fee_enabled", "must be off for NET method")
		v.Check(!f.MerchantBankFeeEnabled, "merchant_bank_fee_enabled", "must be off for NET method")
		v.Check(!f.GSTOnPatientFeeEnabled, "gst_on_patient_fee_enabled", "must be off for NET method")
		v.Check(!f.OutworkChargeEnabled, "outwork_charge_enabled", "must be off for NET method")
		cfg.Net = net

	case calc.MethodGross:
		gross := &calc.GrossConfig{
			LabFeeEnabled:          f.LabFeeEnabled,
			GSTOnLabFeeEnabled:     f.GSTOnLabFeeEnabled,
			MerchantBankFeeEnabled: f.MerchantBankFeeEnabled,
			GSTOnPatientFeeEnabled: f.GSTOnPatientFeeEnabled,
			OutworkChargeEnabled:   f.OutworkChargeEnabled,
			OutworkGSTEnabled:      f.OutworkGSTEnabled,
		}
		if v.Present("service_facility_fee_percent", f.ServiceFacilityFeePercent) {
			gross.ServiceFacilityFeePercent = *f.ServiceFacilityFeePercent
		}
		if v.Present("gst_on_service_facility_fee_percent", f.GSTOnServiceFacilityFeePercent) {
			gross.GSTOnServiceFacilityFeePercent = *f.GSTOnServiceFacilityFeePercent
		}
		if f.LabFeeEnabled {
			if f.LabFeePaidBy == nil {
				v.AddError("lab_fee_paid_by", "is required when lab fee is enabled")
			} else {
				gross.LabFeePaidBy = *f.LabFeePaidBy
			}
		}
		if f.OutworkChargeEnabled {
			if v.Present("outwork_rate_percent", f.OutworkRatePercent) {
				gross.OutworkRatePercent = *f.OutworkRatePercent
			}
			if f.OutworkMerchantFeePercent != nil {
				gross.OutworkMerchantFeePercent = *f.OutworkMerchantFeePercent
			}
		} else {
			v.Check(f.OutworkRatePercent == nil, "outwork_rate_percent", "requires outwork charge to be enabled")
			v.Check(!f.OutworkGSTEnabled, "outwork_gst_enabled", "requires outwork charge to be enabled")
		}

		v.Check(f.SuperHolding == nil, "super_holding", "must be empty for GROSS method")
		v.Check(f.CommissionSplitPercent == nil, "commission_split_percent", "must be empty for GROSS method")
		v.Check(f.GSTOnCommissionPercent == nil, "gst_on_commission_percent", "must be empty for GROSS method")
		cfg.Gross = gross

	default:
		v.AddError("method", fmt.Sprintf("unrecognised calculation method %q", f.Method))
	}

	if !v.Valid() {
		return calc.Config{}, &calc.InvalidInputError{Fields: v.Errors}
	}
	if err := cfg.Validate(); err != nil {
		return calc.Config{}, err
	}
	return cfg, nil
}
