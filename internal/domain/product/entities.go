package product

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("product not found")

type Product struct {
	ID          uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"column:name;size:100;not null" json:"name"`
	Price       float64        `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	CategoryID  uint           `gorm:"column:category_id;index" json:"category_id"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Available   bool           `gorm:"column:available;not null;default:true" json:"available"`
	CreatedAt   int64          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   int64          `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Product) TableName() string { return "products" }
