package form

import (
	"context"
	"errors"
	"testing"

	"dentalbooks/internal/domain/calc"
	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ownerGuard struct{ owner uint }

func (g ownerGuard) Owned(_ context.Context, session *models.UserClaims, clinicID uint) (*models.Clinic, error) {
	if session.UserID != g.owner {
		return nil, apperrors.ErrClinicNotFound
	}
	c := &models.Clinic{UserID: g.owner}
	c.ID = clinicID
	return c, nil
}

func pct(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func netInput() *models.CalculationFormInput {
	with := calc.SuperWith
	return &models.CalculationFormInput{
		Name:                   "Associate 40%",
		Method:                 calc.MethodNet,
		SuperHolding:           &with,
		CommissionSplitPercent: pct("40"),
		GSTOnCommissionPercent: pct("10"),
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	owner := &models.UserClaims{UserID: 1}

	t.Run("valid net form", func(t *testing.T) {
		repo := new(mocks.FormRepository)
		repo.On("Create", ctx, mock.MatchedBy(func(f *models.CalculationForm) bool {
			return f.ClinicID == 4 && f.Method == calc.MethodNet
		})).Return(nil)

		f, err := NewService(repo, ownerGuard{owner: 1}).Create(ctx, owner, 4, netInput())
		require.NoError(t, err)
		assert.Equal(t, "Associate 40%", f.Name)
		repo.AssertExpectations(t)
	})

	t.Run("mismatched branch rejected", func(t *testing.T) {
		in := netInput()
		in.ServiceFacilityFeePercent = pct("60")
		repo := new(mocks.FormRepository)

		_, err := NewService(repo, ownerGuard{owner: 1}).Create(ctx, owner, 4, in)
		require.Error(t, err)
		assert.True(t, errors.Is(err, calc.ErrInvalidInput))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("foreign clinic", func(t *testing.T) {
		_, err := NewService(new(mocks.FormRepository), ownerGuard{owner: 1}).
			Create(ctx, &models.UserClaims{UserID: 2}, 4, netInput())
		assert.ErrorIs(t, err, apperrors.ErrClinicNotFound)
	})
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	owner := &models.UserClaims{UserID: 1}
	stored := &models.CalculationForm{ClinicID: 4, Method: calc.MethodNet}
	stored.ID = 8

	t.Run("in use", func(t *testing.T) {
		repo := new(mocks.FormRepository)
		repo.On("GetByID", ctx, uint(4), uint(8)).Return(stored, nil)
		repo.On("CountIncome", ctx, uint(8)).Return(int64(12), nil)

		err := NewService(repo, ownerGuard{owner: 1}).Delete(ctx, owner, 4, 8)
		assert.ErrorIs(t, err, apperrors.ErrFormInUse)
	})

	t.Run("unused", func(t *testing.T) {
		repo := new(mocks.FormRepository)
		repo.On("GetByID", ctx, uint(4), uint(8)).Return(stored, nil)
		repo.On("CountIncome", ctx, uint(8)).Return(int64(0), nil)
		repo.On("Delete", ctx, uint(4), uint(8)).Return(nil)

		require.NoError(t, NewService(repo, ownerGuard{owner: 1}).Delete(ctx, owner, 4, 8))
		repo.AssertExpectations(t)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	stored := &models.CalculationForm{ClinicID: 4, Method: calc.MethodNet}
	stored.ID = 8

	repo := new(mocks.FormRepository)
	repo.On("GetByID", ctx, uint(4), uint(8)).Return(stored, nil)
	repo.On("Update", ctx, stored).Return(nil)

	in := netInput()
	in.CommissionSplitPercent = pct("45")
	f, err := NewService(repo, ownerGuard{owner: 1}).Update(ctx, &models.UserClaims{UserID: 1}, 4, 8, in)
	require.NoError(t, err)
	assert.True(t, f.CommissionSplitPercent.Equal(decimal.NewFromInt(45)))
}
