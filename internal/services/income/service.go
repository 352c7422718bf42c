// Package income books takings against a clinic's calculation forms.
package income

import (
	"context"
	"fmt"
	"log"
	"time"

	"dentalbooks/internal/domain/calc"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories"
	"dentalbooks/internal/services/clinic"
	"dentalbooks/internal/services/merchantfee"

	"github.com/google/uuid"
)

type Service interface {
	// Preview runs the calculator without storing anything.
	Preview(cfg calc.Config, entry calc.IncomeEntry) (*calc.Result, error)
	Create(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.IncomeEntryInput) (*models.IncomeEntry, error)
	List(ctx context.Context, session *models.UserClaims, clinicID uint, period models.Period, offset, limit int) ([]*models.IncomeEntry, int64, error)
	Get(ctx context.Context, session *models.UserClaims, clinicID, entryID uint) (*models.IncomeEntry, error)
	// GetByReference finds an entry by the reference issued when it was booked.
	GetByReference(ctx context.Context, session *models.UserClaims, clinicID uint, reference string) (*models.IncomeEntry, error)
	Update(ctx context.Context, session *models.UserClaims, clinicID, entryID uint, input *models.IncomeEntryInput) (*models.IncomeEntry, error)
	Delete(ctx context.Context, session *models.UserClaims, clinicID, entryID uint) error
}

type service struct {
	repo   repositories.IncomeRepository
	forms  repositories.FormRepository
	clinic clinic.Guard
	fees   merchantfee.Source
}

func NewService(repo repositories.IncomeRepository, forms repositories.FormRepository, guard clinic.Guard, fees merchantfee.Source) Service {
	return &service{
		repo:   repo,
		forms:  forms,
		clinic: guard,
		fees:   fees,
	}
}

func (s *service) Preview(cfg calc.Config, entry calc.IncomeEntry) (*calc.Result, error) {
	res, err := calc.Compute(cfg, entry)
	if err != nil {
		return nil, err
	}
	return res.Rounded(), nil
}

func (s *service) Create(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.IncomeEntryInput) (*models.IncomeEntry, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}

	e := &models.IncomeEntry{
		ClinicID:  clinicID,
		Reference: uuid.NewString(),
	}
	if err := s.apply(ctx, e, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	log.Printf("Income entry %s booked for clinic %d", e.Reference, clinicID)
	return e, nil
}

func (s *service) List(ctx context.Context, session *models.UserClaims, clinicID uint, period models.Period, offset, limit int) ([]*models.IncomeEntry, int64, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, clinicID, period, offset, limit)
}

func (s *service) Get(ctx context.Context, session *models.UserClaims, clinicID, entryID uint) (*models.IncomeEntry, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, clinicID, entryID)
}

func (s *service) GetByReference(ctx context.Context, session *models.UserClaims, clinicID uint, reference string) (*models.IncomeEntry, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(reference); err != nil {
		return nil, calc.NewInvalidInput("reference", "must be a UUID")
	}
	return s.repo.GetByReference(ctx, clinicID, reference)
}

func (s *service) Update(ctx context.Context, session *models.UserClaims, clinicID, entryID uint, input *models.IncomeEntryInput) (*models.IncomeEntry, error) {
	e, err := s.Get(ctx, session, clinicID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, e, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, session *models.UserClaims, clinicID, entryID uint) error {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, clinicID, entryID)
}

// apply copies input onto e, recomputes against the referenced form and
// stores the snapshot.
func (s *service) apply(ctx context.Context, e *models.IncomeEntry, input *models.IncomeEntryInput) error {
	if _, err := time.Parse(models.DateLayout, input.EntryDate); err != nil {
		return calc.NewInvalidInput("entry_date", fmt.Sprintf("must be a date in %s format", models.DateLayout))
	}
	if input.GrossPatientFee == nil {
		return calc.NewInvalidInput("gross_patient_fee", "is required")
	}
	if err := input.CheckScale(); err != nil {
		return err
	}

	form, err := s.forms.GetByID(ctx, e.ClinicID, input.FormID)
	if err != nil {
		return err
	}
	cfg, err := form.ToConfig()
	if err != nil {
		return err
	}

	input.Apply(e)
	if cfg.Gross != nil && cfg.Gross.MerchantBankFeeEnabled && e.MerchantFeeIncGST == nil && e.PaymentReference != "" {
		fee, err := s.fees.MerchantFee(ctx, e.PaymentReference)
		if err != nil {
			return err
		}
		e.MerchantFeeIncGST = &fee
	}

	res, err := calc.Compute(cfg, e.CalcEntry())
	if err != nil {
		return err
	}
	return e.SetResult(res)
}
