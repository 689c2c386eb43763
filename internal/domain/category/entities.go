package category

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("category not found")

type Category struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"column:name;size:60;not null;uniqueIndex:ux_categories_name_active" json:"name"`
	CreatedAt int64          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt int64          `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Category) TableName() string { return "categories" }
