package calc

import (
	"dentalbooks/internal/validation"

	"github.com/shopspring/decimal"
)

// Deduction names used in Result.Deductions.
const (
	DeductionServiceFee   = "service_facility_fee"
	DeductionGSTOnLabFee  = "gst_on_lab_fee"
	DeductionMerchantFee  = "merchant_fee"
	DeductionBankFee      = "bank_fee"
	DeductionOutworkTotal = "outwork_charge"
)

// Compute derives payout and BAS figures for one income entry under cfg.
func Compute(cfg Config, entry IncomeEntry) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := validateEntry(cfg, entry); err != nil {
		return nil, err
	}

	switch cfg.Method {
	case MethodNet:
		return computeNet(cfg.Net, entry), nil
	case MethodGross:
		return computeGross(cfg.Gross, entry), nil
	}
	// unreachable after Validate
	return nil, NewInvalidInput("method", "unrecognised calculation method")
}

func validateEntry(cfg Config, entry IncomeEntry) error {
	v := validation.New()

	v.NonNegative("gross_patient_fee", entry.GrossPatientFee)
	v.NonNegative("lab_fee", entry.LabFee)
	if !cfg.LabFeeEnabled() {
		v.Check(entry.LabFee.IsZero(), "lab_fee", "lab fee is disabled for this form")
	}
	if v.Valid() {
		v.Check(entry.GrossPatientFee.GreaterThanOrEqual(entry.LabFee), "lab_fee", "must not exceed gross patient fee")
	}

	gross := cfg.Gross
	optional := []struct {
		field   string
		value   *decimal.Decimal
		enabled bool
	}{
		{"gst_on_lab_fee", entry.GSTOnLabFee, gross != nil && gross.GSTOnLabFeeEnabled},
		{"merchant_fee_inc_gst", entry.MerchantFeeIncGST, gross != nil && gross.MerchantBankFeeEnabled},
		{"bank_fee", entry.BankFee, gross != nil && gross.MerchantBankFeeEnabled},
	}
	for _, o := range optional {
		if !o.enabled {
			v.Check(o.value == nil, o.field, "is not accepted by this form")
			continue
		}
		if v.Present(o.field, o.value) {
			v.NonNegative(o.field, *o.value)
		}
	}

	return fromValidator(v)
}

func computeNet(cfg *NetConfig, entry IncomeEntry) *Result {
	r := &Result{
		Method:          MethodNet,
		SuperHolding:    cfg.SuperHolding,
		GrossPatientFee: entry.GrossPatientFee,
		LabFee:          entry.LabFee,
		NetPatientFee:   entry.GrossPatientFee.Sub(entry.LabFee),
		BAS:             BAS{},
	}
	r.Commission = percentOf(r.NetPatientFee, cfg.CommissionSplitPercent)

	switch cfg.SuperHolding {
	case SuperWith:
		r.CommissionComponent = r.Commission.Div(superBase)
		r.SuperComponent = r.CommissionComponent.Mul(SuperRate)
		r.GSTOnCommission = percentOf(r.CommissionComponent, cfg.GSTOnCommissionPercent)
		r.TotalPaymentToDentist = r.CommissionComponent.Add(r.GSTOnCommission)
		r.TotalCommission = r.TotalPaymentToDentist
	default:
		r.CommissionComponent = r.Commission
		r.GSTOnCommission = percentOf(r.Commission, cfg.GSTOnCommissionPercent)
		r.TotalCommission = r.Commission.Add(r.GSTOnCommission)
		r.TotalPaymentToDentist = r.TotalCommission
	}

	r.BAS[BASGSTOnSales] = r.GSTOnCommission
	r.BAS[BASTotalSales] = r.TotalPaymentToDentist
	return r
}

func computeGross(cfg *GrossConfig, entry IncomeEntry) *Result {
	r := &Result{
		Method:          MethodGross,
		GrossPatientFee: entry.GrossPatientFee,
		LabFee:          entry.LabFee,
		NetPatientFee:   entry.GrossPatientFee.Sub(entry.LabFee),
		BAS:             BAS{},
	}

	r.ServiceFee = percentOf(r.NetPatientFee, cfg.ServiceFacilityFeePercent)
	r.GSTOnServiceFee = percentOf(r.ServiceFee, cfg.GSTOnServiceFacilityFeePercent)
	r.TotalServiceFee = r.ServiceFee.Add(r.GSTOnServiceFee)
	remitted := r.NetPatientFee.Sub(r.TotalServiceFee)
	r.Deductions = append(r.Deductions, Deduction{Name: DeductionServiceFee, Amount: r.TotalServiceFee})

	r.BAS[BASGSTCredit] = r.GSTOnServiceFee
	r.BAS[BASTotalSales] = r.GrossPatientFee
	r.BAS[BASClinicExpenses] = r.LabFee.Add(r.TotalServiceFee)

	if cfg.GSTOnPatientFeeEnabled {
		r.GSTOnPatientFee = gstInside(r.GrossPatientFee, StandardGSTPercent)
		r.BAS[BASGSTOnSales] = r.GSTOnPatientFee
	} else {
		r.BAS[BASGSTFreeSales] = r.GrossPatientFee
	}

	// Options compose in a fixed order: lab fee GST, merchant/bank fee, outwork.
	if cfg.GSTOnLabFeeEnabled {
		r.GSTOnLabFee = *entry.GSTOnLabFee
		if cfg.LabFeePaidBy == LabFeePaidByDentist {
			remitted = remitted.Sub(r.GSTOnLabFee)
			r.Deductions = append(r.Deductions, Deduction{Name: DeductionGSTOnLabFee, Amount: r.GSTOnLabFee})
		} else {
			r.BAS.Add(BASGSTCredit, r.GSTOnLabFee)
			r.BAS.Add(BASClinicExpenses, r.GSTOnLabFee)
		}
	}

	if cfg.MerchantBankFeeEnabled {
		incGST := *entry.MerchantFeeIncGST
		r.MerchantFeeGST = gstInside(incGST, StandardGSTPercent)
		r.MerchantFeeExGST = incGST.Sub(r.MerchantFeeGST)
		r.BankFee = *entry.BankFee

		remitted = remitted.Sub(r.MerchantFeeExGST).Sub(r.MerchantFeeGST).Sub(r.BankFee)
		r.Deductions = append(r.Deductions,
			Deduction{Name: DeductionMerchantFee, Amount: incGST},
			Deduction{Name: DeductionBankFee, Amount: r.BankFee},
		)
		r.BAS.Add(BASGSTCredit, r.MerchantFeeGST)
		r.BAS.Add(BASClinicExpenses, incGST.Add(r.BankFee))
	}

	if cfg.OutworkChargeEnabled {
		r.OutworkCharge = percentOf(r.NetPatientFee, cfg.OutworkRatePercent)
		if cfg.OutworkGSTEnabled {
			r.GSTOnOutwork = percentOf(r.OutworkCharge, cfg.GSTOnServiceFacilityFeePercent)
		}
		r.OutworkMerchantFee = percentOf(r.OutworkCharge, cfg.OutworkMerchantFeePercent)
		r.TotalOutwork = r.OutworkCharge.Add(r.GSTOnOutwork).Add(r.OutworkMerchantFee)

		remitted = remitted.Sub(r.TotalOutwork)
		r.Deductions = append(r.Deductions, Deduction{Name: DeductionOutworkTotal, Amount: r.TotalOutwork})
		r.BAS.Add(BASGSTCredit, r.GSTOnOutwork)
		r.BAS.Add(BASClinicExpenses, r.TotalOutwork)
	}

	r.AmountRemittedToDentist = remitted
	return r
}
