package repositories

import (
	"context"
	"fmt"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"

	"gorm.io/gorm"
)

// ClinicRepository persists clinics.
type ClinicRepository interface {
	Create(ctx context.Context, clinic *models.Clinic) error
	GetByID(ctx context.Context, id uint) (*models.Clinic, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Clinic, error)
	Update(ctx context.Context, clinic *models.Clinic) error
	Delete(ctx context.Context, id uint) error

	// CountByUser counts the clinics a user owns.
	CountByUser(ctx context.Context, userID uint) (int64, error)
	// CountDependents counts forms, expense heads and entries under a clinic.
	CountDependents(ctx context.Context, clinicID uint) (int64, error)
}

type clinicRepository struct {
	db *gorm.DB
}

func NewClinicRepository(db *gorm.DB) ClinicRepository {
	return &clinicRepository{db: db}
}

func (r *clinicRepository) Create(ctx context.Context, clinic *models.Clinic) error {
	if err := r.db.WithContext(ctx).Create(clinic).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *clinicRepository) GetByID(ctx context.Context, id uint) (*models.Clinic, error) {
	var clinic models.Clinic
	if err := r.db.WithContext(ctx).First(&clinic, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrClinicNotFound)
	}
	return &clinic, nil
}

func (r *clinicRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Clinic, error) {
	var clinics []*models.Clinic
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&clinics).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return clinics, nil
}

func (r *clinicRepository) Update(ctx context.Context, clinic *models.Clinic) error {
	if err := r.db.WithContext(ctx).Save(clinic).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *clinicRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Clinic{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrClinicNotFound
	}
	return nil
}

func (r *clinicRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Clinic{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return n, nil
}

func (r *clinicRepository) CountDependents(ctx context.Context, clinicID uint) (int64, error) {
	var total int64
	for _, model := range []interface{}{
		&models.CalculationForm{},
		&models.ExpenseHead{},
		&models.IncomeEntry{},
		&models.ExpenseEntry{},
	} {
		var n int64
		if err := r.db.WithContext(ctx).Model(model).Where("clinic_id = ?", clinicID).Count(&n).Error; err != nil {
			return 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
		}
		total += n
	}
	return total, nil
}
