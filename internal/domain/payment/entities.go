package payment

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("payment not found")

type Type string

const (
	TypeSalary  Type = "salary"
	TypeBonus   Type = "bonus"
	TypeAdvance Type = "advance"
)

type Payment struct {
	ID         uint `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmployeeID uint `gorm:"column:employee_id;not null;index" json:"employee_id"`
	// Denormalized for list rendering and search.
	EmployeeName string         `gorm:"column:employee_name;size:100" json:"employee_name"`
	Amount       float64        `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Type         Type           `gorm:"column:type;size:16;not null" json:"type"`
	PaidAt       int64          `gorm:"column:paid_at;not null" json:"paid_at"`
	Note         string         `gorm:"column:note;type:text" json:"note"`
	CreatedAt    int64          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    int64          `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Payment) TableName() string { return "payments" }
