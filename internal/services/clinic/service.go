// Package clinic manages clinics and answers ownership checks for everything
// nested under them.
package clinic

import (
	"context"
	"log"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories"
)

// Guard resolves a clinic the session is allowed to touch. Clinics owned by
// someone else are reported as not found.
type Guard interface {
	Owned(ctx context.Context, session *models.UserClaims, clinicID uint) (*models.Clinic, error)
}

type Service interface {
	Guard
	Create(ctx context.Context, session *models.UserClaims, input *models.ClinicInput) (*models.Clinic, error)
	List(ctx context.Context, session *models.UserClaims) ([]*models.Clinic, error)
	Update(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.ClinicInput) (*models.Clinic, error)
	Delete(ctx context.Context, session *models.UserClaims, clinicID uint) error
}

type service struct {
	repo repositories.ClinicRepository
}

func NewService(repo repositories.ClinicRepository) Service {
	return &service{repo: repo}
}

func (s *service) Owned(ctx context.Context, session *models.UserClaims, clinicID uint) (*models.Clinic, error) {
	c, err := s.repo.GetByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	if c.UserID != session.UserID {
		log.Printf("User %d denied access to clinic %d", session.UserID, clinicID)
		return nil, apperrors.ErrClinicNotFound
	}
	return c, nil
}

func (s *service) Create(ctx context.Context, session *models.UserClaims, input *models.ClinicInput) (*models.Clinic, error) {
	c := &models.Clinic{UserID: session.UserID}
	input.Apply(c)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, session *models.UserClaims) ([]*models.Clinic, error) {
	return s.repo.ListByUser(ctx, session.UserID)
}

func (s *service) Update(ctx context.Context, session *models.UserClaims, clinicID uint, input *models.ClinicInput) (*models.Clinic, error) {
	c, err := s.Owned(ctx, session, clinicID)
	if err != nil {
		return nil, err
	}
	input.Apply(c)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, session *models.UserClaims, clinicID uint) error {
	if _, err := s.Owned(ctx, session, clinicID); err != nil {
		return err
	}
	n, err := s.repo.CountDependents(ctx, clinicID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.ErrClinicNotEmpty
	}
	return s.repo.Delete(ctx, clinicID)
}
