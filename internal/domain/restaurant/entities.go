package restaurant

import "errors"

var ErrNotFound = errors.New("restaurant profile not found")

// Profile is the singleton restaurant settings row.
type Profile struct {
	ID        uint   `gorm:"column:id;primaryKey" json:"id"`
	Name      string `gorm:"column:name;size:100;not null" json:"name"`
	Phone     string `gorm:"column:phone;size:10" json:"phone"`
	Street    string `gorm:"column:street;size:200" json:"street"`
	City      string `gorm:"column:city;size:100" json:"city"`
	Currency  string `gorm:"column:currency;size:8" json:"currency"`
	CreatedAt int64  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt int64  `gorm:"column:updated_at" json:"updated_at"`
}

func (Profile) TableName() string { return "restaurant_profile" }
