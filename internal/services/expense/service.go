// Package expense manages expense heads and the GST classification of the
// expenses booked to them.
package expense

import (
	"context"
	"fmt"
	"time"

	"dentalbooks/internal/domain/calc"
	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories"
	"dentalbooks/internal/services/clinic"

	"github.com/shopspring/decimal"
)

type Service interface {
	// Classify runs the classifier without storing anything.
	Classify(amount decimal.Decimal, head calc.ExpenseHead, businessUsePercent *decimal.Decimal) (*calc.ExpenseResult, error)

	CreateHead(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.ExpenseHeadInput) (*models.ExpenseHead, error)
	ListHeads(ctx context.Context, session *models.UserClaims, clinicID uint) ([]*models.ExpenseHead, error)
	GetHead(ctx context.Context, session *models.UserClaims, clinicID, headID uint) (*models.ExpenseHead, error)
	UpdateHead(ctx context.Context, session *models.UserClaims, clinicID, headID uint, input *models.ExpenseHeadInput) (*models.ExpenseHead, error)
	DeleteHead(ctx context.Context, session *models.UserClaims, clinicID, headID uint) error

	CreateEntry(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.ExpenseEntryInput) (*models.ExpenseEntry, error)
	ListEntries(ctx context.Context, session *models.UserClaims, clinicID uint, period models.Period, offset, limit int) ([]*models.ExpenseEntry, int64, error)
	GetEntry(ctx context.Context, session *models.UserClaims, clinicID, entryID uint) (*models.ExpenseEntry, error)
	UpdateEntry(ctx context.Context, session *models.UserClaims, clinicID, entryID uint, input *models.ExpenseEntryInput) (*models.ExpenseEntry, error)
	DeleteEntry(ctx context.Context, session *models.UserClaims, clinicID, entryID uint) error
}

type service struct {
	repo   repositories.ExpenseRepository
	clinic clinic.Guard
}

func NewService(repo repositories.ExpenseRepository, guard clinic.Guard) Service {
	return &service{repo: repo, clinic: guard}
}

func (s *service) Classify(amount decimal.Decimal, head calc.ExpenseHead, businessUsePercent *decimal.Decimal) (*calc.ExpenseResult, error) {
	res, err := calc.Classify(amount, head, businessUsePercent)
	if err != nil {
		return nil, err
	}
	return res.Rounded(), nil
}

func (s *service) CreateHead(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.ExpenseHeadInput) (*models.ExpenseHead, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}

	h := &models.ExpenseHead{ClinicID: clinicID}
	if err := applyHead(h, input); err != nil {
		return nil, err
	}
	if err := s.repo.CreateHead(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) ListHeads(ctx context.Context, session *models.UserClaims, clinicID uint) ([]*models.ExpenseHead, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}
	return s.repo.ListHeads(ctx, clinicID)
}

func (s *service) GetHead(ctx context.Context, session *models.UserClaims, clinicID, headID uint) (*models.ExpenseHead, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}
	return s.repo.GetHead(ctx, clinicID, headID)
}

// UpdateHead changes the head's treatment for future entries only. Stored
// entries keep the snapshot taken when they were booked.
func (s *service) UpdateHead(ctx context.Context, session *models.UserClaims, clinicID, headID uint, input *models.ExpenseHeadInput) (*models.ExpenseHead, error) {
	h, err := s.GetHead(ctx, session, clinicID, headID)
	if err != nil {
		return nil, err
	}
	if err := applyHead(h, input); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateHead(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (s *service) DeleteHead(ctx context.Context, session *models.UserClaims, clinicID, headID uint) error {
	if _, err := s.GetHead(ctx, session, clinicID, headID); err != nil {
		return err
	}
	n, err := s.repo.CountEntriesByHead(ctx, headID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.ErrHeadInUse
	}
	return s.repo.DeleteHead(ctx, clinicID, headID)
}

func (s *service) CreateEntry(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.ExpenseEntryInput) (*models.ExpenseEntry, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}

	e := &models.ExpenseEntry{ClinicID: clinicID}
	if err := s.applyEntry(ctx, e, input); err != nil {
		return nil, err
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) ListEntries(ctx context.Context, session *models.UserClaims, clinicID uint, period models.Period, offset, limit int) ([]*models.ExpenseEntry, int64, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListEntries(ctx, clinicID, period, offset, limit)
}

func (s *service) GetEntry(ctx context.Context, session *models.UserClaims, clinicID, entryID uint) (*models.ExpenseEntry, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}
	return s.repo.GetEntry(ctx, clinicID, entryID)
}

func (s *service) UpdateEntry(ctx context.Context, session *models.UserClaims, clinicID, entryID uint, input *models.ExpenseEntryInput) (*models.ExpenseEntry, error) {
	e, err := s.GetEntry(ctx, session, clinicID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.applyEntry(ctx, e, input); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) DeleteEntry(ctx context.Context, session *models.UserClaims, clinicID, entryID uint) error {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return err
	}
	return s.repo.DeleteEntry(ctx, clinicID, entryID)
}

// applyHead copies input onto h and checks the resulting treatment resolves.
func applyHead(h *models.ExpenseHead, input *models.ExpenseHeadInput) error {
	if input.GSTApplicable {
		if input.GSTPercentage == nil {
			return calc.NewInvalidInput("gst_percentage", "is required when GST applies")
		}
		if input.GSTType == "" {
			return calc.NewInvalidInput("gst_type", "is required when GST applies")
		}
	}
	if err := input.CheckScale(); err != nil {
		return err
	}
	input.Apply(h)
	_, err := h.CalcHead().Treatment()
	return err
}

func (s *service) applyEntry(ctx context.Context, e *models.ExpenseEntry, input *models.ExpenseEntryInput) error {
	if _, err := time.Parse(models.DateLayout, input.EntryDate); err != nil {
		return calc.NewInvalidInput("entry_date", fmt.Sprintf("must be a date in %s format", models.DateLayout))
	}
	if input.Amount == nil {
		return calc.NewInvalidInput("amount", "is required")
	}
	if err := input.CheckScale(); err != nil {
		return err
	}

	head, err := s.repo.GetHead(ctx, e.ClinicID, input.HeadID)
	if err != nil {
		return err
	}

	input.Apply(e)
	res, err := calc.Classify(e.Amount, head.CalcHead(), e.BusinessUsePercent)
	if err != nil {
		return err
	}
	return e.SetResult(res)
}
