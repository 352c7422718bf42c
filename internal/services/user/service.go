package user

import (
	"context"
	"errors"
	"log"
	"strings"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories"
	"dentalbooks/internal/services/auth"
)

type Service interface {
	Me(ctx context.Context, session *models.UserClaims) (*models.User, error)
	UpdateProfile(ctx context.Context, session *models.UserClaims, input *models.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, session *models.UserClaims) error
	List(ctx context.Context, session *models.UserClaims, offset, limit int) ([]*models.User, int64, error)
	// EnsureAdmin creates the admin account or promotes an existing user.
	EnsureAdmin(ctx context.Context, email, name, password string) (*models.User, error)
}

type service struct {
	repo    repositories.UserRepository
	clinics repositories.ClinicRepository
}

func NewService(repo repositories.UserRepository, clinics repositories.ClinicRepository) Service {
	return &service{
		repo:    repo,
		clinics: clinics,
	}
}

func (s *service) Me(ctx context.Context, session *models.UserClaims) (*models.User, error) {
	return s.repo.GetByID(ctx, session.UserID)
}

func (s *service) UpdateProfile(ctx context.Context, session *models.UserClaims, input *models.UpdateUserInput) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" {
		user.Email = email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) Delete(ctx context.Context, session *models.UserClaims) error {
	n, err := s.clinics.CountByUser(ctx, session.UserID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperrors.ErrUserHasClinics
	}
	return s.repo.Delete(ctx, session.UserID)
}

func (s *service) List(ctx context.Context, session *models.UserClaims, offset, limit int) ([]*models.User, int64, error) {
	if !session.IsAdmin() {
		return nil, 0, apperrors.ErrForbidden
	}
	return s.repo.List(ctx, offset, limit)
}

func (s *service) EnsureAdmin(ctx context.Context, email, name, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			log.Printf("Admin %s already exists", email)
			return existing, nil
		}
		existing.Role = models.RoleAdmin
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		log.Printf("Promoted %s to admin", email)
		return existing, nil
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return nil, err
	}

	if err := auth.CheckPasswordPolicy(password); err != nil {
		return nil, err
	}
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &models.User{
		Email:        email,
		Name:         name,
		Password:     hashed,
		Role:         models.RoleAdmin,
		Status:       models.StatusActive,
		TokenVersion: 1,
	}
	if err := s.repo.Create(ctx, admin); err != nil {
		return nil, err
	}
	log.Printf("Created admin %s", email)
	return admin, nil
}
