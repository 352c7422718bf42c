package models

import (
	"errors"
	"testing"

	"dentalbooks/internal/domain/calc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func superHolding(s calc.SuperHolding) *calc.SuperHolding { return &s }
func payer(p calc.LabFeePayer) *calc.LabFeePayer          { return &p }

func TestCalculationForm_ToConfig(t *testing.T) {
	t.Run("net form", func(t *testing.T) {
		f := &CalculationForm{
			Method:                 calc.MethodNet,
			SuperHolding:           superHolding(calc.SuperWith),
			CommissionSplitPercent: pct("40"),
			GSTOnCommissionPercent: pct("10"),
			LabFeeEnabled:          true,
		}
		cfg, err := f.ToConfig()
		require.NoError(t, err)

		require.NotNil(t, cfg.Net)
		assert.Nil(t, cfg.Gross)
		assert.Equal(t, calc.SuperWith, cfg.Net.SuperHolding)
		assert.True(t, cfg.Net.CommissionSplitPercent.Equal(decimal.NewFromInt(40)))
		assert.True(t, cfg.Net.LabFeeEnabled)
	})

	t.Run("gross form with outwork", func(t *testing.T) {
		f := &CalculationForm{
			Method:                         calc.MethodGross,
			ServiceFacilityFeePercent:      pct("60"),
			GSTOnServiceFacilityFeePercent: pct("10"),
			LabFeeEnabled:                  true,
			LabFeePaidBy:                   payer(calc.LabFeePaidByDentist),
			OutworkChargeEnabled:           true,
			OutworkRatePercent:             pct("5"),
		}
		cfg, err := f.ToConfig()
		require.NoError(t, err)

		require.NotNil(t, cfg.Gross)
		assert.Nil(t, cfg.Net)
		assert.Equal(t, calc.LabFeePaidByDentist, cfg.Gross.LabFeePaidBy)
		assert.True(t, cfg.Gross.OutworkMerchantFeePercent.IsZero())
	})
}

func TestCalculationForm_ToConfigRejects(t *testing.T) {
	tests := []struct {
		name  string
		form  CalculationForm
		field string
	}{
		{
			name:  "net missing split",
			form:  CalculationForm{Method: calc.MethodNet, SuperHolding: superHolding(calc.SuperWithout), GSTOnCommissionPercent: pct("10")},
			field: "commission_split_percent",
		},
		{
			name: "net with gross column",
			form: CalculationForm{
				Method:                    calc.MethodNet,
				SuperHolding:              superHolding(calc.SuperWithout),
				CommissionSplitPercent:    pct("40"),
				GSTOnCommissionPercent:    pct("10"),
				ServiceFacilityFeePercent: pct("60"),
			},
			field: "service_facility_fee_percent",
		},
		{
			name: "gross lab fee without payer",
			form: CalculationForm{
				Method:                         calc.MethodGross,
				ServiceFacilityFeePercent:      pct("60"),
				GSTOnServiceFacilityFeePercent: pct("10"),
				LabFeeEnabled:                  true,
			},
			field: "lab_fee_paid_by",
		},
		{
			name: "gross percent out of range",
			form: CalculationForm{
				Method:                         calc.MethodGross,
				ServiceFacilityFeePercent:      pct("160"),
				GSTOnServiceFacilityFeePercent: pct("10"),
			},
			field: "service_facility_fee_percent",
		},
		{
			name: "percent finer than column scale",
			form: CalculationForm{
				Method:                 calc.MethodNet,
				SuperHolding:           superHolding(calc.SuperWithout),
				CommissionSplitPercent: pct("33.33333"),
				GSTOnCommissionPercent: pct("10"),
			},
			field: "commission_split_percent",
		},
		{
			name:  "unknown method",
			form:  CalculationForm{Method: "PERCENT"},
			field: "method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.ToConfig()
			require.Error(t, err)
			assert.True(t, errors.Is(err, calc.ErrInvalidInput))

			var inv *calc.InvalidInputError
			require.True(t, errors.As(err, &inv))
			assert.Contains(t, inv.Fields, tt.field)
		})
	}
}

func TestIncomeEntry_SnapshotRoundTrip(t *testing.T) {
	cfg := calc.Config{Method: calc.MethodNet, Net: &calc.NetConfig{
		SuperHolding:           calc.SuperWith,
		CommissionSplitPercent: decimal.NewFromInt(40),
		GSTOnCommissionPercent: decimal.NewFromInt(10),
	}}
	res, err := calc.Compute(cfg, calc.IncomeEntry{GrossPatientFee: decimal.NewFromInt(1200)})
	require.NoError(t, err)

	var e IncomeEntry
	require.NoError(t, e.SetResult(res))

	snap, err := e.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, "471.43", snap.TotalPaymentToDentist.StringFixed(2))
	assert.Equal(t, "42.86", snap.BAS[calc.BASGSTOnSales].StringFixed(2))
}

func TestInputs_CheckScale(t *testing.T) {
	t.Run("income within scale", func(t *testing.T) {
		in := IncomeEntryInput{GrossPatientFee: pct("100.50"), LabFee: pct("20"), BankFee: pct("0.3")}
		assert.NoError(t, in.CheckScale())
	})

	tests := []struct {
		name  string
		check func() error
		field string
	}{
		{"income gross sub cent", IncomeEntryInput{GrossPatientFee: pct("100.005")}.CheckScale, "gross_patient_fee"},
		{"income merchant fee sub cent", IncomeEntryInput{GrossPatientFee: pct("100"), MerchantFeeIncGST: pct("1.234")}.CheckScale, "merchant_fee_inc_gst"},
		{"expense amount sub cent", ExpenseEntryInput{Amount: pct("9.999")}.CheckScale, "amount"},
		{"expense business use", ExpenseEntryInput{Amount: pct("10"), BusinessUsePercent: pct("33.33333")}.CheckScale, "business_use_percent"},
		{"head percentage", ExpenseHeadInput{GSTPercentage: pct("10.00001")}.CheckScale, "gst_percentage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			require.Error(t, err)
			assert.True(t, errors.Is(err, calc.ErrInvalidInput))

			var inv *calc.InvalidInputError
			require.True(t, errors.As(err, &inv))
			assert.Contains(t, inv.Fields, tt.field)
		})
	}
}
