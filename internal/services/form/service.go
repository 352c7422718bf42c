// Package form manages the calculation forms a clinic books income against.
package form

import (
	"context"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories"
	"dentalbooks/internal/services/clinic"
)

type Service interface {
	Create(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.CalculationFormInput) (*models.CalculationForm, error)
	List(ctx context.Context, session *models.UserClaims, clinicID uint) ([]*models.CalculationForm, error)
	Get(ctx context.Context, session *models.UserClaims, clinicID, formID uint) (*models.CalculationForm, error)
	Update(ctx context.Context, session *models.UserClaims, clinicID, formID uint, input *models.CalculationFormInput) (*models.CalculationForm, error)
	Delete(ctx context.Context, session *models.UserClaims, clinicID, formID uint) error
}

type service struct {
	repo   repositories.FormRepository
	clinic clinic.Guard
}

func NewService(repo repositories.FormRepository, guard clinic.Guard) Service {
	return &service{repo: repo, clinic: guard}
}

func (s *service) Create(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.CalculationFormInput) (*models.CalculationForm, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}

	f := &models.CalculationForm{ClinicID: clinicID}
	input.Apply(f)
	if _, err := f.ToConfig(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) List(ctx context.Context, session *models.UserClaims, clinicID uint) ([]*models.CalculationForm, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}
	return s.repo.ListByClinic(ctx, clinicID)
}

func (s *service) Get(ctx context.Context, session *models.UserClaims, clinicID, formID uint) (*models.CalculationForm, error) {
	if _, err := s.clinic.Owned(ctx, session, clinicID); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, clinicID, formID)
}

func (s *service) Update(ctx context.Context, session *models.UserClaims, clinicID, formID uint, input *models.CalculationFormInput) (*models.CalculationForm, error) {
	f, err := s.Get(ctx, session, clinicID, formID)
	if err != nil {
		return nil, err
	}

	input.Apply(f)
	if _, err := f.ToConfig(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, session *models.UserClaims, clinicID, formID uint) error {
	if _, err := s.Get(ctx, session, clinicID, formID); err != nil {
		return err
	}
	n, err := s.repo.CountIncome(ctx, formID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.ErrFormInUse
	}
	return s.repo.Delete(ctx, clinicID, formID)
}
