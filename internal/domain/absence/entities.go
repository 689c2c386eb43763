package absence

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("absence not found")

type Absence struct {
	ID           uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EmployeeID   uint           `gorm:"column:employee_id;not null;index" json:"employee_id"`
	EmployeeName string         `gorm:"column:employee_name;size:100" json:"employee_name"`
	Date         int64          `gorm:"column:date;not null" json:"date"`
	Reason       string         `gorm:"column:reason;size:200" json:"reason"`
	CreatedAt    int64          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    int64          `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Absence) TableName() string { return "absences" }
