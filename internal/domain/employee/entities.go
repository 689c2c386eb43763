package employee

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("employee not found")

type Employee struct {
	ID    uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"column:name;size:100;not null" json:"name"`
	Phone string `gorm:"column:phone;size:10;not null;uniqueIndex:ux_employees_phone_active" json:"phone"`
	// Monthly salary in the restaurant's currency.
	Salary   float64 `gorm:"column:salary;type:decimal(12,2)" json:"salary"`
	Position string  `gorm:"column:position;size:50" json:"position"`
	// Millisecond epoch; CreatedAt is set once, UpdatedAt only on update.
	CreatedAt int64          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt int64          `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Employee) TableName() string { return "employees" }
