package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories/cache"

	"gorm.io/gorm"
)

// FormRepository persists calculation forms. Lookups are scoped to a clinic.
type FormRepository interface {
	Create(ctx context.Context, form *models.CalculationForm) error
	GetByID(ctx context.Context, clinicID, id uint) (*models.CalculationForm, error)
	ListByClinic(ctx context.Context, clinicID uint) ([]*models.CalculationForm, error)
	Update(ctx context.Context, form *models.CalculationForm) error
	Delete(ctx context.Context, clinicID, id uint) error

	// CountIncome counts income entries recorded against the form.
	CountIncome(ctx context.Context, formID uint) (int64, error)
}

type formRepository struct {
	db    *gorm.DB
	cache *cache.CacheService
}

// NewFormRepository creates a form repository. cache may be nil.
func NewFormRepository(db *gorm.DB, cache *cache.CacheService) FormRepository {
	return &formRepository{db: db, cache: cache}
}

func (r *formRepository) Create(ctx context.Context, form *models.CalculationForm) error {
	if err := r.db.WithContext(ctx).Create(form).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *formRepository) GetByID(ctx context.Context, clinicID, id uint) (*models.CalculationForm, error) {
	if r.cache != nil {
		form, err := r.cache.GetForm(ctx, id)
		switch {
		case err == nil && form.ClinicID == clinicID:
			return form, nil
		case err == nil:
			return nil, apperrors.ErrFormNotFound
		case !errors.Is(err, cache.ErrMiss):
			log.Printf("form cache read failed for ID %d: %v", id, err)
		}
	}

	var form models.CalculationForm
	if err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).First(&form, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrFormNotFound)
	}

	if r.cache != nil {
		if err := r.cache.CacheForm(ctx, &form); err != nil {
			log.Printf("Failed to cache form: %v", err)
		}
	}
	return &form, nil
}

func (r *formRepository) ListByClinic(ctx context.Context, clinicID uint) ([]*models.CalculationForm, error) {
	var forms []*models.CalculationForm
	if err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).Order("name").Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return forms, nil
}

func (r *formRepository) Update(ctx context.Context, form *models.CalculationForm) error {
	if err := r.db.WithContext(ctx).Save(form).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	r.invalidate(ctx, form.ID)
	return nil
}

func (r *formRepository) Delete(ctx context.Context, clinicID, id uint) error {
	result := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).Delete(&models.CalculationForm{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrFormNotFound
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *formRepository) CountIncome(ctx context.Context, formID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.IncomeEntry{}).Where("form_id = ?", formID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return n, nil
}

func (r *formRepository) invalidate(ctx context.Context, id uint) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateForm(ctx, id); err != nil {
		log.Printf("Warning: Failed to invalidate form cache: %v", err)
	}
}
