package models

import "gorm.io/gorm"

// Clinic is a practice owned by one user. Forms, expense heads and entries
// all hang off a clinic.
type Clinic struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null" json:"user_id"`
	Name    string `gorm:"not null" json:"name"`
	ABN     string `gorm:"column:abn" json:"abn"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type ClinicInput struct {
	Name    string `json:"name" validate:"required,max=120"`
	ABN     string `json:"abn" validate:"omitempty,numeric,len=11"`
	Address string `json:"address" validate:"max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// Apply copies the input onto c.
func (in ClinicInput) Apply(c *Clinic) {
	c.Name = in.Name
	c.ABN = in.ABN
	c.Address = in.Address
	c.Phone = in.Phone
	c.Email = in.Email
}
