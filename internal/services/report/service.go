// Package report builds BAS summaries from stored entry snapshots.
package report

import (
	"context"
	"fmt"

	"dentalbooks/internal/domain/calc"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories"
	"dentalbooks/internal/services/clinic"

	"github.com/shopspring/decimal"
)

type Service interface {
	BAS(ctx context.Context, session *models.UserClaims, clinicID uint, period models.Period) (*models.BASReport, error)
}

type service struct {
	income   repositories.IncomeRepository
	expenses repositories.ExpenseRepository
	clinic   clinic.Guard
}

func NewService(income repositories.IncomeRepository, expenses repositories.ExpenseRepository, guard clinic.Guard) Service {
	return &service{
		income:   income,
		expenses: expenses,
		clinic:   guard,
	}
}

func (s *service) BAS(ctx context.Context, session *models.UserClaims, clinicID uint, period models.Period) (*models.BASReport, error) {
	if !period.From.IsZero() && !period.To.IsZero() && period.To.Before(period.From) {
		return nil, calc.NewInvalidInput("to", "must not be before from")
	}
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}

	incomes, _, err := s.income.List(ctx, clinicID, period, 0, 0)
	if err != nil {
		return nil, err
	}
	expenses, _, err := s.expenses.ListEntries(ctx, clinicID, period, 0, 0)
	if err != nil {
		return nil, err
	}

	r := &models.BASReport{
		ClinicID:      clinicID,
		From:          period.From,
		To:            period.To,
		IncomeCount:   len(incomes),
		ExpenseCount:  len(expenses),
		Income:        calc.BAS{},
		Expenses:      calc.BAS{},
		Totals:        calc.BAS{},
		DentistPayout: decimal.Zero,
	}

	for _, e := range incomes {
		snap, err := e.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("income entry %d snapshot: %w", e.ID, err)
		}
		merge(r.Income, snap.BAS)
		r.DentistPayout = r.DentistPayout.Add(snap.Payout())
	}
	for _, e := range expenses {
		snap, err := e.Snapshot()
		if err != nil {
			return nil, fmt.Errorf("expense entry %d snapshot: %w", e.ID, err)
		}
		merge(r.Expenses, snap.BAS)
	}

	merge(r.Totals, r.Income)
	merge(r.Totals, r.Expenses)
	r.NetGSTPayable = r.Totals[calc.BASGSTOnSales].Sub(r.Totals[calc.BASGSTCredit])
	return r, nil
}

func merge(dst, src calc.BAS) {
	for code, amount := range src {
		dst.Add(code, amount)
	}
}
