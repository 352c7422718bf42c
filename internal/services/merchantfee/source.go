// Package merchantfee looks up the card processing fee charged on a payment so
// income entries do not need it typed in by hand.
package merchantfee

import (
	"context"
	"fmt"
	"log"
	"strings"

	apperrors "dentalbooks/internal/errors"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"
)

// Source resolves the GST-inclusive merchant fee charged for a payment reference.
type Source interface {
	MerchantFee(ctx context.Context, reference string) (decimal.Decimal, error)
}

// NewSource returns a Stripe-backed source, or Disabled when secretKey is empty.
func NewSource(secretKey string) Source {
	if secretKey == "" {
		log.Println("STRIPE_SECRET_KEY not set, merchant fee lookup disabled")
		return Disabled{}
	}
	return NewStripeSource(secretKey)
}

// Disabled is the Source used when no processor is configured.
type Disabled struct{}

func (Disabled) MerchantFee(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, apperrors.ErrFeeSourceNotConfigured
}

type balanceTransactions interface {
	Get(id string, params *stripe.BalanceTransactionParams) (*stripe.BalanceTransaction, error)
}

// StripeSource reads the fee from a Stripe balance transaction (txn_...).
type StripeSource struct {
	txns balanceTransactions
}

func NewStripeSource(secretKey string) *StripeSource {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeSource{txns: sc.BalanceTransaction}
}

func (s *StripeSource) MerchantFee(ctx context.Context, reference string) (decimal.Decimal, error) {
	if !strings.HasPrefix(reference, "txn_") {
		return decimal.Zero, fmt.Errorf("%w: %q is not a balance transaction id", apperrors.ErrFeeLookupFailed, reference)
	}

	params := &stripe.BalanceTransactionParams{}
	params.Context = ctx
	txn, err := s.txns.Get(reference, params)
	if err != nil {
		log.Printf("stripe balance transaction %s: %v", reference, err)
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrFeeLookupFailed, err)
	}

	// Stripe reports fees in the currency's minor unit.
	return decimal.New(txn.Fee, -2), nil
}
