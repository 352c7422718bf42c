package repositories

import (
	"context"
	"fmt"

	apperrors "dentalbooks/internal/errors"
	"dentalbooks/internal/models"

	"gorm.io/gorm"
)

// ExpenseRepository persists expense heads and the entries booked to them.
type ExpenseRepository interface {
	CreateHead(ctx context.Context, head *models.ExpenseHead) error
	GetHead(ctx context.Context, clinicID, id uint) (*models.ExpenseHead, error)
	ListHeads(ctx context.Context, clinicID uint) ([]*models.ExpenseHead, error)
	UpdateHead(ctx context.Context, head *models.ExpenseHead) error
	DeleteHead(ctx context.Context, clinicID, id uint) error
	CountEntriesByHead(ctx context.Context, headID uint) (int64, error)

	CreateEntry(ctx context.Context, entry *models.ExpenseEntry) error
	GetEntry(ctx context.Context, clinicID, id uint) (*models.ExpenseEntry, error)
	// ListEntries returns a page of entries ordered by date. limit <= 0 returns all.
	ListEntries(ctx context.Context, clinicID uint, period models.Period, offset, limit int) ([]*models.ExpenseEntry, int64, error)
	UpdateEntry(ctx context.Context, entry *models.ExpenseEntry) error
	DeleteEntry(ctx context.Context, clinicID, id uint) error
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) CreateHead(ctx context.Context, head *models.ExpenseHead) error {
	if err := r.db.WithContext(ctx).Create(head).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *expenseRepository) GetHead(ctx context.Context, clinicID, id uint) (*models.ExpenseHead, error) {
	var head models.ExpenseHead
	if err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).First(&head, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrHeadNotFound)
	}
	return &head, nil
}

func (r *expenseRepository) ListHeads(ctx context.Context, clinicID uint) ([]*models.ExpenseHead, error) {
	var heads []*models.ExpenseHead
	if err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).Order("name").Find(&heads).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return heads, nil
}

func (r *expenseRepository) UpdateHead(ctx context.Context, head *models.ExpenseHead) error {
	if err := r.db.WithContext(ctx).Save(head).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *expenseRepository) DeleteHead(ctx context.Context, clinicID, id uint) error {
	result := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).Delete(&models.ExpenseHead{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrHeadNotFound
	}
	return nil
}

func (r *expenseRepository) CountEntriesByHead(ctx context.Context, headID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.ExpenseEntry{}).Where("head_id = ?", headID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return n, nil
}

func (r *expenseRepository) CreateEntry(ctx context.Context, entry *models.ExpenseEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *expenseRepository) GetEntry(ctx context.Context, clinicID, id uint) (*models.ExpenseEntry, error) {
	var entry models.ExpenseEntry
	if err := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).First(&entry, id).Error; err != nil {
		return nil, notFound(err, apperrors.ErrEntryNotFound)
	}
	return &entry, nil
}

func (r *expenseRepository) ListEntries(ctx context.Context, clinicID uint, period models.Period, offset, limit int) ([]*models.ExpenseEntry, int64, error) {
	var entries []*models.ExpenseEntry
	var total int64

	db := inPeriod(r.db.WithContext(ctx).Model(&models.ExpenseEntry{}).Where("clinic_id = ?", clinicID), period).Session(&gorm.Session{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	if err := paged(db.Order("entry_date, id"), offset, limit).Find(&entries).Error; err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return entries, total, nil
}

func (r *expenseRepository) UpdateEntry(ctx context.Context, entry *models.ExpenseEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, err)
	}
	return nil
}

func (r *expenseRepository) DeleteEntry(ctx context.Context, clinicID, id uint) error {
	result := r.db.WithContext(ctx).Where("clinic_id = ?", clinicID).Delete(&models.ExpenseEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseOperation, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}
	return nil
}
