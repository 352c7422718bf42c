package calc

import (
	"fmt"

	"dentalbooks/internal/validation"

	"github.com/shopspring/decimal"
)

// Method selects the commission model of a calculation form.
type Method string

const (
	MethodNet   Method = "NET"
	MethodGross Method = "GROSS"
)

// SuperHolding says whether superannuation is withheld from a NET commission.
type SuperHolding string

const (
	SuperWith    SuperHolding = "WITH"
	SuperWithout SuperHolding = "WITHOUT"
)

// LabFeePayer records who settled the lab bill under the GROSS method.
type LabFeePayer string

const (
	LabFeePaidByClinic  LabFeePayer = "CLINIC"
	LabFeePaidByDentist LabFeePayer = "DENTIST"
)

// BASCode names a Business Activity Statement field.
type BASCode string

const (
	BASGSTOnSales     BASCode = "1A_GstOnSales"
	BASGSTCredit      BASCode = "1B_GstCredit"
	BASTotalSales     BASCode = "G1_TotalSalesWithGst"
	BASGSTFreeSales   BASCode = "G3_GstFreeSales"
	BASClinicExpenses BASCode = "G11_ClinicExpenses"
)

// BAS maps field codes to amounts.
type BAS map[BASCode]decimal.Decimal

// Add accumulates amount under code.
func (b BAS) Add(code BASCode, amount decimal.Decimal) {
	b[code] = b[code].Add(amount)
}

// Rounded returns a copy with every amount rounded to 2dp.
func (b BAS) Rounded() BAS {
	out := make(BAS, len(b))
	for k, v := range b {
		out[k] = v.Round(2)
	}
	return out
}

// Scaled returns a copy with every amount multiplied by factor.
func (b BAS) Scaled(factor decimal.Decimal) BAS {
	out := make(BAS, len(b))
	for k, v := range b {
		out[k] = v.Mul(factor)
	}
	return out
}

// Fixed rates from Australian tax rules.
var (
	hundred = decimal.NewFromInt(100)

	// SuperRate is the compulsory superannuation guarantee rate.
	SuperRate = decimal.RequireFromString("0.12")
	superBase = decimal.NewFromInt(1).Add(SuperRate)

	// StandardGSTPercent applies where a form does not carry its own GST rate.
	StandardGSTPercent = decimal.NewFromInt(10)
)

func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// gstInside extracts the GST component from a GST-inclusive amount.
func gstInside(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred.Add(pct))
}

// Config is one calculation form. Exactly one of Net or Gross is set and it
// must match Method.
type Config struct {
	Method Method       `json:"method"`
	Net    *NetConfig   `json:"net,omitempty"`
	Gross  *GrossConfig `json:"gross,omitempty"`
}

// NetConfig parameterises the NET method.
type NetConfig struct {
	SuperHolding           SuperHolding    `json:"super_holding"`
	CommissionSplitPercent decimal.Decimal `json:"commission_split_percent"`
	GSTOnCommissionPercent decimal.Decimal `json:"gst_on_commission_percent"`
	LabFeeEnabled          bool            `json:"lab_fee_enabled"`
}

// GrossConfig parameterises the GROSS method and its optional deductions.
type GrossConfig struct {
	ServiceFacilityFeePercent      decimal.Decimal `json:"service_facility_fee_percent"`
	GSTOnServiceFacilityFeePercent decimal.Decimal `json:"gst_on_service_facility_fee_percent"`
	LabFeeEnabled                  bool            `json:"lab_fee_enabled"`
	LabFeePaidBy                   LabFeePayer     `json:"lab_fee_paid_by,omitempty"`
	GSTOnLabFeeEnabled             bool            `json:"gst_on_lab_fee_enabled"`
	MerchantBankFeeEnabled         bool            `json:"merchant_bank_fee_enabled"`
	GSTOnPatientFeeEnabled         bool            `json:"gst_on_patient_fee_enabled"`
	OutworkChargeEnabled           bool            `json:"outwork_charge_enabled"`
	OutworkRatePercent             decimal.Decimal `json:"outwork_rate_percent"`
	OutworkGSTEnabled              bool            `json:"outwork_gst_enabled"`
	OutworkMerchantFeePercent      decimal.Decimal `json:"outwork_merchant_fee_percent"`
}

// LabFeeEnabled reports whether the active branch accepts a lab fee.
func (c Config) LabFeeEnabled() bool {
	switch {
	case c.Net != nil:
		return c.Net.LabFeeEnabled
	case c.Gross != nil:
		return c.Gross.LabFeeEnabled
	}
	return false
}

// Validate checks the union shape and every range in the active branch.
func (c Config) Validate() error {
	v := validation.New()

	switch c.Method {
	case MethodNet:
		v.Check(c.Gross == nil, "gross", "must be empty for NET method")
		if c.Net == nil {
			v.AddError("net", "is required for NET method")
			break
		}
		c.Net.validate(v)
	case MethodGross:
		v.Check(c.Net == nil, "net", "must be empty for GROSS method")
		if c.Gross == nil {
			v.AddError("gross", "is required for GROSS method")
			break
		}
		c.Gross.validate(v)
	default:
		v.AddError("method", fmt.Sprintf("unrecognised calculation method %q", c.Method))
	}

	return fromValidator(v)
}

func (n *NetConfig) validate(v *validation.Validator) {
	switch n.SuperHolding {
	case SuperWith, SuperWithout:
	default:
		v.AddError("super_holding", fmt.Sprintf("unrecognised super holding %q", n.SuperHolding))
	}
	v.Percent("commission_split_percent", n.CommissionSplitPercent)
	v.Percent("gst_on_commission_percent", n.GSTOnCommissionPercent)
}

func (g *GrossConfig) validate(v *validation.Validator) {
	v.Percent("service_facility_fee_percent", g.ServiceFacilityFeePercent)
	v.Percent("gst_on_service_facility_fee_percent", g.GSTOnServiceFacilityFeePercent)

	if g.LabFeeEnabled {
		switch g.LabFeePaidBy {
		case LabFeePaidByClinic, LabFeePaidByDentist:
		default:
			v.AddError("lab_fee_paid_by", fmt.Sprintf("unrecognised lab fee payer %q", g.LabFeePaidBy))
		}
	}
	v.Check(!g.GSTOnLabFeeEnabled || g.LabFeeEnabled, "gst_on_lab_fee_enabled", "requires lab fee to be enabled")

	if g.OutworkChargeEnabled {
		v.Percent("outwork_rate_percent", g.OutworkRatePercent)
		v.Percent("outwork_merchant_fee_percent", g.OutworkMerchantFeePercent)
	}
}

// IncomeEntry is one day's or one transaction's takings under a form.
type IncomeEntry struct {
	GrossPatientFee   decimal.Decimal  `json:"gross_patient_fee"`
	LabFee            decimal.Decimal  `json:"lab_fee"`
	GSTOnLabFee       *decimal.Decimal `json:"gst_on_lab_fee,omitempty"`
	MerchantFeeIncGST *decimal.Decimal `json:"merchant_fee_inc_gst,omitempty"`
	BankFee           *decimal.Decimal `json:"bank_fee,omitempty"`
}

// Deduction is one line subtracted from a GROSS remittance, in application order.
type Deduction struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Result carries every derived amount of Compute. Fields that do not apply to
// the selected branch stay zero.
type Result struct {
	Method       Method       `json:"method"`
	SuperHolding SuperHolding `json:"super_holding,omitempty"`

	GrossPatientFee decimal.Decimal `json:"gross_patient_fee"`
	LabFee          decimal.Decimal `json:"lab_fee"`
	NetPatientFee   decimal.Decimal `json:"net_patient_fee"`

	// NET
	Commission            decimal.Decimal `json:"commission"`
	CommissionComponent   decimal.Decimal `json:"commission_component"`
	SuperComponent        decimal.Decimal `json:"super_component"`
	GSTOnCommission       decimal.Decimal `json:"gst_on_commission"`
	TotalCommission       decimal.Decimal `json:"total_commission"`
	TotalPaymentToDentist decimal.Decimal `json:"total_payment_to_dentist"`

	// GROSS
	ServiceFee              decimal.Decimal `json:"service_fee"`
	GSTOnServiceFee         decimal.Decimal `json:"gst_on_service_fee"`
	TotalServiceFee         decimal.Decimal `json:"total_service_fee"`
	GSTOnLabFee             decimal.Decimal `json:"gst_on_lab_fee"`
	MerchantFeeExGST        decimal.Decimal `json:"merchant_fee_ex_gst"`
	MerchantFeeGST          decimal.Decimal `json:"merchant_fee_gst"`
	BankFee                 decimal.Decimal `json:"bank_fee"`
	OutworkCharge           decimal.Decimal `json:"outwork_charge"`
	GSTOnOutwork            decimal.Decimal `json:"gst_on_outwork"`
	OutworkMerchantFee      decimal.Decimal `json:"outwork_merchant_fee"`
	TotalOutwork            decimal.Decimal `json:"total_outwork"`
	GSTOnPatientFee         decimal.Decimal `json:"gst_on_patient_fee"`
	AmountRemittedToDentist decimal.Decimal `json:"amount_remitted_to_dentist"`

	Deductions []Deduction `json:"deductions,omitempty"`
	BAS        BAS         `json:"bas"`
}

// Payout is what the dentist receives under either method.
func (r *Result) Payout() decimal.Decimal {
	if r.Method == MethodGross {
		return r.AmountRemittedToDentist
	}
	return r.TotalPaymentToDentist
}

// Rounded returns a copy of r with every amount rounded to 2dp.
func (r *Result) Rounded() *Result {
	out := *r
	for _, f := range []*decimal.Decimal{
		&out.GrossPatientFee, &out.LabFee, &out.NetPatientFee,
		&out.Commission, &out.CommissionComponent, &out.SuperComponent,
		&out.GSTOnCommission, &out.TotalCommission, &out.TotalPaymentToDentist,
		&out.ServiceFee, &out.GSTOnServiceFee, &out.TotalServiceFee,
		&out.GSTOnLabFee, &out.MerchantFeeExGST, &out.MerchantFeeGST, &out.BankFee,
		&out.OutworkCharge, &out.GSTOnOutwork, &out.OutworkMerchantFee, &out.TotalOutwork,
		&out.GSTOnPatientFee, &out.AmountRemittedToDentist,
	} {
		*f = f.Round(2)
	}

	if r.Deductions != nil {
		out.Deductions = make([]Deduction, len(r.Deductions))
		for i, d := range r.Deductions {
			out.Deductions[i] = Deduction{Name: d.Name, Amount: d.Amount.Round(2)}
		}
	}
	out.BAS = r.BAS.Rounded()
	return &out
}
