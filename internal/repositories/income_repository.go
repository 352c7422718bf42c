package repositories

import (
	"context"
	"fmt"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"

	"gorm.io/gorm"
)

// IncomeRepository persists income entries.
type IncomeRepository interface {
	Create(ctx context.Context, entry *models.IncomeEntry) error
	GetByID(ctx context.Context, clinicID, id uint) (*models.IncomeEntry, error)
	GetByReference(ctx context.Context, clinicID uint, reference string) (*models.IncomeEntry, error)
	// List returns a page of entries ordered by date. limit <= 0 returns all.
	List(ctx context.Context, clinicID uint, period models.Period, offset, limit int) ([]*models.IncomeEntry, int64, error)
	Update(ctx context.Context, entry *models.IncomeEntry) error
	Delete(ctx context.Context, clinicID, id uint) error
}

type incomeRepository struct {
	db *gorm.DB
}

func NewIncomeRepository(db *gorm.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

func (r *incomeRepository) Create(ctx context.Context, entry *models.IncomeEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *incomeRepository) GetByID(ctx context.Context, clinicID, id uint) (*models.IncomeEntry, error) {
	var entry models.IncomeEntry
	if err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).First(&entry, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrEntryNotFound)
	}
	return &entry, nil
}

func (r *incomeRepository) GetByReference(ctx context.Context, clinicID uint, reference string) (*models.IncomeEntry, error) {
	var entry models.IncomeEntry
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND reference = ?", clinicID, reference).
		First(&entry).Error; err != nil {
		return nil, notFound(err, apperrors.ErrEntryNotFound)
	}
	return &entry, nil
}

func (r *incomeRepository) List(ctx context.Context, clinicID uint, period models.Period, offset, limit int) ([]*models.IncomeEntry, int64, error) {
	var entries []*models.IncomeEntry
	var total int64

	db := inPeriod(r.db.WithContext(ctx).Model(&models.IncomeEntry{}).Where("clinic_id = ?", clinicID), period).Session(&gorm.Session{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if err := paged(db.Order("entry_date, id"), offset, limit).Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return entries, total, nil
}

func (r *incomeRepository) Update(ctx context.Context, entry *models.IncomeEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *incomeRepository) Delete(ctx context.Context, clinicID, id uint) error {
	result := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).Delete(&models.IncomeEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}
	return nil
}

// inPeriod restricts a query on entry_date. Zero bounds are open.
func inPeriod(db *gorm.DB, p models.Period) *gorm.DB {
	if !p.From.IsZero() {
		db = db.Where("entry_date >= ?", p.From)
	}
	if !p.To.IsZero() {
		db = db.Where("entry_date <= ?", p.To)
	}
	return db
}

func paged(db *gorm.DB, offset, limit int) *gorm.DB {
	if limit <= 0 {
		return db
	}
	return db.Offset(offset).Limit(limit)
}
