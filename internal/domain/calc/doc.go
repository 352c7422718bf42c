/*
Package calc holds the commission and GST arithmetic used by the bookkeeping
service.

Two entry points are exposed:

	// Income: derive dentist payout and BAS fields from a patient fee.
	res, err := calc.Compute(cfg, calc.IncomeEntry{
	    GrossPatientFee: decimal.RequireFromString("11000"),
	    LabFee:          decimal.RequireFromString("1000"),
	})

	// Expenses: split an amount into net and GST parts for a head.
	exp, err := calc.Classify(amount, head, nil)

Both functions are pure. All arithmetic runs on shopspring/decimal with no
intermediate rounding; call Rounded on a result to get 2dp figures for display
or storage.

Errors:

Every rejection is a *InvalidInputError carrying field -> message pairs.
errors.Is(err, ErrInvalidInput) matches all of them. No partial result is ever
returned alongside an error.
*/
package calc
