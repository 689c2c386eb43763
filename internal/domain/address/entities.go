package address

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("address not found")

// Address is a delivery/billing address kept by the restaurant.
type Address struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Label     string         `gorm:"column:label;size:60;not null" json:"label"`
	Street    string         `gorm:"column:street;size:200;not null" json:"street"`
	City      string         `gorm:"column:city;size:100;not null" json:"city"`
	Pincode   string         `gorm:"column:pincode;size:6;not null" json:"pincode"`
	Phone     string         `gorm:"column:phone;size:10" json:"phone"`
	CreatedAt int64          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt int64          `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Address) TableName() string { return "addresses" }
