package calc

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

var cent = d("0.01")

func assertWithin(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	diff := got.Sub(d(want)).Abs()
	assert.True(t, diff.LessThanOrEqual(cent), "want %s ±0.01, got %s %v", want, got.String(), msgAndArgs)
}

func assertExact(t *testing.T, want, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s %v", want.String(), got.String(), msgAndArgs)
}

func netConfig(super SuperHolding, split, gst string) Config {
	return Config{
		Method: MethodNet,
		Net: &NetConfig{
			SuperHolding:           super,
			CommissionSplitPercent: d(split),
			GSTOnCommissionPercent: d(gst),
			LabFeeEnabled:          true,
		},
	}
}

func grossConfig(fee, gst string, opts ...func(*GrossConfig)) Config {
	g := &GrossConfig{
		ServiceFacilityFeePercent:      d(fee),
		GSTOnServiceFacilityFeePercent: d(gst),
		LabFeeEnabled:                  true,
		LabFeePaidBy:                   LabFeePaidByClinic,
	}
	for _, o := range opts {
		o(g)
	}
	return Config{Method: MethodGross, Gross: g}
}

func requireInvalidField(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	var inv *InvalidInputError
	require.True(t, errors.As(err, &inv))
	assert.Contains(t, inv.Fields, field)
}

func TestCompute_NetWithoutSuper(t *testing.T) {
	res, err := Compute(netConfig(SuperWithout, "40", "10"), IncomeEntry{
		GrossPatientFee: d("11000"),
		LabFee:          d("1000"),
	})
	require.NoError(t, err)

	assertWithin(t, "10000", res.NetPatientFee)
	assertWithin(t, "4000", res.Commission)
	assertWithin(t, "400", res.GSTOnCommission)
	assertWithin(t, "4400", res.TotalCommission)
	assertExact(t, res.GSTOnCommission, res.BAS[BASGSTOnSales])
	assertExact(t, res.TotalCommission, res.BAS[BASTotalSales])
	assertExact(t, res.TotalCommission, res.Payout())
}

func TestCompute_NetWithSuper(t *testing.T) {
	res, err := Compute(netConfig(SuperWith, "40", "10"), IncomeEntry{
		GrossPatientFee: d("1200"),
	})
	require.NoError(t, err)

	assertWithin(t, "480", res.Commission)
	assertWithin(t, "428.57", res.CommissionComponent)
	assertWithin(t, "51.43", res.SuperComponent)
	assertWithin(t, "42.86", res.GSTOnCommission)
	assertWithin(t, "471.43", res.TotalPaymentToDentist)
	assertExact(t, res.GSTOnCommission, res.BAS[BASGSTOnSales])
	assertExact(t, res.TotalPaymentToDentist, res.BAS[BASTotalSales])

	rounded := res.Rounded()
	assert.Equal(t, "428.57", rounded.CommissionComponent.StringFixed(2))
	assert.Equal(t, "471.43", rounded.TotalPaymentToDentist.StringFixed(2))
}

func TestCompute_GrossStandard(t *testing.T) {
	res, err := Compute(grossConfig("60", "10"), IncomeEntry{
		GrossPatientFee: d("80494.87"),
		LabFee:          d("6575.91"),
	})
	require.NoError(t, err)

	assertWithin(t, "73918.96", res.NetPatientFee)
	assertWithin(t, "44351.38", res.ServiceFee)
	assertWithin(t, "4435.14", res.GSTOnServiceFee)
	assertWithin(t, "48786.52", res.TotalServiceFee)
	assertWithin(t, "25132.44", res.AmountRemittedToDentist)

	assertExact(t, res.GSTOnServiceFee, res.BAS[BASGSTCredit])
	assertExact(t, res.GrossPatientFee, res.BAS[BASTotalSales])
	assertExact(t, res.LabFee.Add(res.TotalServiceFee), res.BAS[BASClinicExpenses])
	assertExact(t, res.GrossPatientFee, res.BAS[BASGSTFreeSales])

	require.Len(t, res.Deductions, 1)
	assert.Equal(t, DeductionServiceFee, res.Deductions[0].Name)
}

func TestCompute_Properties(t *testing.T) {
	entries := []IncomeEntry{
		{GrossPatientFee: d("0")},
		{GrossPatientFee: d("250"), LabFee: d("250")},
		{GrossPatientFee: d("1234.56"), LabFee: d("78.9")},
		{GrossPatientFee: d("99999.99"), LabFee: d("0.01")},
	}
	splits := []string{"0", "33.3", "40", "100"}

	for _, e := range entries {
		for _, split := range splits {
			without, err := Compute(netConfig(SuperWithout, split, "10"), e)
			require.NoError(t, err)
			assertExact(t, e.GrossPatientFee.Sub(e.LabFee), without.NetPatientFee)
			assertExact(t, without.Commission.Mul(d("1.1")), without.TotalCommission)

			with, err := Compute(netConfig(SuperWith, split, "10"), e)
			require.NoError(t, err)
			sum := with.CommissionComponent.Add(with.SuperComponent)
			tol := with.Commission.Abs().Mul(d("1e-9")).Add(d("1e-12"))
			assert.True(t, sum.Sub(with.Commission).Abs().LessThanOrEqual(tol), "component+super %s != commission %s", sum, with.Commission)
			assert.True(t, with.CommissionComponent.Mul(d("1.12")).Sub(with.Commission).Abs().LessThanOrEqual(tol))

			gross, err := Compute(grossConfig(split, "10"), e)
			require.NoError(t, err)
			assertExact(t, gross.NetPatientFee, gross.AmountRemittedToDentist.Add(gross.TotalServiceFee))
		}
	}
}

func TestCompute_GrossOptions(t *testing.T) {
	t.Run("gst on lab fee paid by dentist", func(t *testing.T) {
		cfg := grossConfig("60", "10", func(g *GrossConfig) {
			g.LabFeePaidBy = LabFeePaidByDentist
			g.GSTOnLabFeeEnabled = true
		})
		res, err := Compute(cfg, IncomeEntry{GrossPatientFee: d("1100"), LabFee: d("100"), GSTOnLabFee: dp("10")})
		require.NoError(t, err)

		assertExact(t, d("330"), res.AmountRemittedToDentist)
		assertExact(t, d("60"), res.BAS[BASGSTCredit])
		assertExact(t, d("760"), res.BAS[BASClinicExpenses])
	})

	t.Run("gst on lab fee paid by clinic", func(t *testing.T) {
		cfg := grossConfig("60", "10", func(g *GrossConfig) {
			g.GSTOnLabFeeEnabled = true
		})
		res, err := Compute(cfg, IncomeEntry{GrossPatientFee: d("1100"), LabFee: d("100"), GSTOnLabFee: dp("10")})
		require.NoError(t, err)

		assertExact(t, d("340"), res.AmountRemittedToDentist)
		assertExact(t, d("70"), res.BAS[BASGSTCredit])
		assertExact(t, d("770"), res.BAS[BASClinicExpenses])
	})

	t.Run("merchant and bank fee", func(t *testing.T) {
		cfg := grossConfig("60", "10", func(g *GrossConfig) {
			g.MerchantBankFeeEnabled = true
		})
		res, err := Compute(cfg, IncomeEntry{GrossPatientFee: d("1000"), MerchantFeeIncGST: dp("22"), BankFee: dp("5")})
		require.NoError(t, err)

		assertExact(t, d("2"), res.MerchantFeeGST)
		assertExact(t, d("20"), res.MerchantFeeExGST)
		assertExact(t, d("313"), res.AmountRemittedToDentist)
		assertExact(t, d("62"), res.BAS[BASGSTCredit])
		assertExact(t, d("687"), res.BAS[BASClinicExpenses])
	})

	t.Run("outwork charge", func(t *testing.T) {
		cfg := grossConfig("60", "10", func(g *GrossConfig) {
			g.OutworkChargeEnabled = true
			g.OutworkRatePercent = d("5")
			g.OutworkGSTEnabled = true
			g.OutworkMerchantFeePercent = d("1")
		})
		res, err := Compute(cfg, IncomeEntry{GrossPatientFee: d("1000")})
		require.NoError(t, err)

		assertExact(t, d("50"), res.OutworkCharge)
		assertExact(t, d("5"), res.GSTOnOutwork)
		assertExact(t, d("0.5"), res.OutworkMerchantFee)
		assertExact(t, d("284.5"), res.AmountRemittedToDentist)
	})

	t.Run("options compose in fixed order", func(t *testing.T) {
		cfg := grossConfig("60", "10", func(g *GrossConfig) {
			g.LabFeePaidBy = LabFeePaidByDentist
			g.GSTOnLabFeeEnabled = true
			g.MerchantBankFeeEnabled = true
			g.OutworkChargeEnabled = true
			g.OutworkRatePercent = d("5")
		})
		res, err := Compute(cfg, IncomeEntry{
			GrossPatientFee:   d("1100"),
			LabFee:            d("100"),
			GSTOnLabFee:       dp("10"),
			MerchantFeeIncGST: dp("22"),
			BankFee:           dp("5"),
		})
		require.NoError(t, err)

		names := make([]string, 0, len(res.Deductions))
		for _, ded := range res.Deductions {
			names = append(names, ded.Name)
		}
		assert.Equal(t, []string{
			DeductionServiceFee,
			DeductionGSTOnLabFee,
			DeductionMerchantFee,
			DeductionBankFee,
			DeductionOutworkTotal,
		}, names)
		// 1000 - 660 - 10 - 22 - 5 - 50
		assertExact(t, d("253"), res.AmountRemittedToDentist)
	})

	t.Run("gst on patient fee", func(t *testing.T) {
		cfg := grossConfig("60", "10", func(g *GrossConfig) {
			g.GSTOnPatientFeeEnabled = true
		})
		res, err := Compute(cfg, IncomeEntry{GrossPatientFee: d("1100")})
		require.NoError(t, err)

		assertExact(t, d("100"), res.BAS[BASGSTOnSales])
		_, hasGSTFree := res.BAS[BASGSTFreeSales]
		assert.False(t, hasGSTFree)
	})
}

func TestCompute_InvalidInput(t *testing.T) {
	withMerchant := grossConfig("60", "10", func(g *GrossConfig) { g.MerchantBankFeeEnabled = true })
	noLab := netConfig(SuperWithout, "40", "10")
	noLab.Net.LabFeeEnabled = false

	tests := []struct {
		name  string
		cfg   Config
		entry IncomeEntry
		field string
	}{
		{"lab fee above gross", netConfig(SuperWithout, "40", "10"), IncomeEntry{GrossPatientFee: d("100"), LabFee: d("101")}, "lab_fee"},
		{"negative gross", netConfig(SuperWithout, "40", "10"), IncomeEntry{GrossPatientFee: d("-1")}, "gross_patient_fee"},
		{"lab fee disabled", noLab, IncomeEntry{GrossPatientFee: d("100"), LabFee: d("10")}, "lab_fee"},
		{"split above hundred", netConfig(SuperWithout, "120", "10"), IncomeEntry{GrossPatientFee: d("100")}, "commission_split_percent"},
		{"unknown super holding", netConfig("SOMETIMES", "40", "10"), IncomeEntry{GrossPatientFee: d("100")}, "super_holding"},
		{"unknown method", Config{Method: "HYBRID"}, IncomeEntry{GrossPatientFee: d("100")}, "method"},
		{"net branch missing", Config{Method: MethodNet}, IncomeEntry{GrossPatientFee: d("100")}, "net"},
		{"branch mismatch", Config{Method: MethodNet, Net: noLab.Net, Gross: withMerchant.Gross}, IncomeEntry{GrossPatientFee: d("100")}, "gross"},
		{"merchant fee missing", withMerchant, IncomeEntry{GrossPatientFee: d("100"), BankFee: dp("1")}, "merchant_fee_inc_gst"},
		{"negative bank fee", withMerchant, IncomeEntry{GrossPatientFee: d("100"), MerchantFeeIncGST: dp("1"), BankFee: dp("-1")}, "bank_fee"},
		{"bank fee not accepted", grossConfig("60", "10"), IncomeEntry{GrossPatientFee: d("100"), BankFee: dp("1")}, "bank_fee"},
		{"gst on lab fee without lab fee", grossConfig("60", "10", func(g *GrossConfig) {
			g.LabFeeEnabled = false
			g.GSTOnLabFeeEnabled = true
		}), IncomeEntry{GrossPatientFee: d("100"), GSTOnLabFee: dp("1")}, "gst_on_lab_fee_enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Compute(tt.cfg, tt.entry)
			assert.Nil(t, res)
			requireInvalidField(t, err, tt.field)
		})
	}
}
