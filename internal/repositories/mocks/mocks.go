// Package mocks holds testify mocks of the repository interfaces for service tests.
package mocks

import (
	"context"
	"time"

	"dentalbooks/internal/models"
	"dentalbooks/internal/repositories"

	"github.com/stretchr/testify/mock"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) IncrementTokenVersion(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *UserRepository) List(ctx context.Context, offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	users, _ := args.Get(0).([]*models.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, userID uint, hashedPassword string) error {
	return m.Called(ctx, userID, hashedPassword).Error(0)
}

func (m *UserRepository) TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

type ClinicRepository struct {
	mock.Mock
}

func (m *ClinicRepository) Create(ctx context.Context, clinic *models.Clinic) error {
	return m.Called(ctx, clinic).Error(0)
}

func (m *ClinicRepository) GetByID(ctx context.Context, id uint) (*models.Clinic, error) {
	args := m.Called(ctx, id)
	clinic, _ := args.Get(0).(*models.Clinic)
	return clinic, args.Error(1)
}

func (m *ClinicRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Clinic, error) {
	args := m.Called(ctx, userID)
	clinics, _ := args.Get(0).([]*models.Clinic)
	return clinics, args.Error(1)
}

func (m *ClinicRepository) Update(ctx context.Context, clinic *models.Clinic) error {
	return m.Called(ctx, clinic).Error(0)
}

func (m *ClinicRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ClinicRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ClinicRepository) CountDependents(ctx context.Context, clinicID uint) (int64, error) {
	args := m.Called(ctx, clinicID)
	return args.Get(0).(int64), args.Error(1)
}

type FormRepository struct {
	mock.Mock
}

func (m *FormRepository) Create(ctx context.Context, form *models.CalculationForm) error {
	return m.Called(ctx, form).Error(0)
}

func (m *FormRepository) GetByID(ctx context.Context, clinicID, id uint) (*models.CalculationForm, error) {
	args := m.Called(ctx, clinicID, id)
	form, _ := args.Get(0).(*models.CalculationForm)
	return form, args.Error(1)
}

func (m *FormRepository) ListByClinic(ctx context.Context, clinicID uint) ([]*models.CalculationForm, error) {
	args := m.Called(ctx, clinicID)
	forms, _ := args.Get(0).([]*models.CalculationForm)
	return forms, args.Error(1)
}

func (m *FormRepository) Update(ctx context.Context, form *models.CalculationForm) error {
	return m.Called(ctx, form).Error(0)
}

func (m *FormRepository) Delete(ctx context.Context, clinicID, id uint) error {
	return m.Called(ctx, clinicID, id).Error(0)
}

func (m *FormRepository) CountIncome(ctx context.Context, formID uint) (int64, error) {
	args := m.Called(ctx, formID)
	return args.Get(0).(int64), args.Error(1)
}

type IncomeRepository struct {
	mock.Mock
}

func (m *IncomeRepository) Create(ctx context.Context, entry *models.IncomeEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *IncomeRepository) GetByID(ctx context.Context, clinicID, id uint) (*models.IncomeEntry, error) {
	args := m.Called(ctx, clinicID, id)
	entry, _ := args.Get(0).(*models.IncomeEntry)
	return entry, args.Error(1)
}

func (m *IncomeRepository) GetByReference(ctx context.Context, clinicID uint, reference string) (*models.IncomeEntry, error) {
	args := m.Called(ctx, clinicID, reference)
	entry, _ := args.Get(0).(*models.IncomeEntry)
	return entry, args.Error(1)
}

func (m *IncomeRepository) List(ctx context.Context, clinicID uint, period models.Period, offset, limit int) ([]*models.IncomeEntry, int64, error) {
	args := m.Called(ctx, clinicID, period, offset, limit)
	entries, _ := args.Get(0).([]*models.IncomeEntry)
	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *IncomeRepository) Update(ctx context.Context, entry *models.IncomeEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *IncomeRepository) Delete(ctx context.Context, clinicID, id uint) error {
	return m.Called(ctx, clinicID, id).Error(0)
}

type ExpenseRepository struct {
	mock.Mock
}

func (m *ExpenseRepository) CreateHead(ctx context.Context, head *models.ExpenseHead) error {
	return m.Called(ctx, head).Error(0)
}

func (m *ExpenseRepository) GetHead(ctx context.Context, clinicID, id uint) (*models.ExpenseHead, error) {
	args := m.Called(ctx, clinicID, id)
	head, _ := args.Get(0).(*models.ExpenseHead)
	return head, args.Error(1)
}

func (m *ExpenseRepository) ListHeads(ctx context.Context, clinicID uint) ([]*models.ExpenseHead, error) {
	args := m.Called(ctx, clinicID)
	heads, _ := args.Get(0).([]*models.ExpenseHead)
	return heads, args.Error(1)
}

func (m *ExpenseRepository) UpdateHead(ctx context.Context, head *models.ExpenseHead) error {
	return m.Called(ctx, head).Error(0)
}

func (m *ExpenseRepository) DeleteHead(ctx context.Context, clinicID, id uint) error {
	return m.Called(ctx, clinicID, id).Error(0)
}

func (m *ExpenseRepository) CountEntriesByHead(ctx context.Context, headID uint) (int64, error) {
	args := m.Called(ctx, headID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ExpenseRepository) CreateEntry(ctx context.Context, entry *models.ExpenseEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *ExpenseRepository) GetEntry(ctx context.Context, clinicID, id uint) (*models.ExpenseEntry, error) {
	args := m.Called(ctx, clinicID, id)
	entry, _ := args.Get(0).(*models.ExpenseEntry)
	return entry, args.Error(1)
}

func (m *ExpenseRepository) ListEntries(ctx context.Context, clinicID uint, period models.Period, offset, limit int) ([]*models.ExpenseEntry, int64, error) {
	args := m.Called(ctx, clinicID, period, offset, limit)
	entries, _ := args.Get(0).([]*models.ExpenseEntry)
	return entries, args.Get(1).(int64), args.Error(2)
}

func (m *ExpenseRepository) UpdateEntry(ctx context.Context, entry *models.ExpenseEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *ExpenseRepository) DeleteEntry(ctx context.Context, clinicID, id uint) error {
	return m.Called(ctx, clinicID, id).Error(0)
}

var (
	_ repositories.UserRepository    = (*UserRepository)(nil)
	_ repositories.ClinicRepository  = (*ClinicRepository)(nil)
	_ repositories.FormRepository    = (*FormRepository)(nil)
	_ repositories.IncomeRepository  = (*IncomeRepository)(nil)
	_ repositories.ExpenseRepository = (*ExpenseRepository)(nil)
)
