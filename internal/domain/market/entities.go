package market

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrListNotFound = errors.New("market list not found")
	ErrItemNotFound = errors.New("market item not found")
)

// List is one shopping run (e.g. "Sunday vegetables").
type List struct {
	ID    uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title string `gorm:"column:title;size:100;not null" json:"title"`
	// Millisecond epoch of the planned shopping day.
	PlannedFor int64          `gorm:"column:planned_for" json:"planned_for"`
	CreatedAt  int64          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  int64          `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (List) TableName() string { return "market_lists" }

type Item struct {
	ID        uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ListID    uint           `gorm:"column:list_id;index" json:"list_id"`
	Name      string         `gorm:"column:name;size:100;not null" json:"name"`
	Quantity  float64        `gorm:"column:quantity;type:decimal(10,3);not null" json:"quantity"`
	Unit      string         `gorm:"column:unit;size:20" json:"unit"`
	Price     float64        `gorm:"column:price;type:decimal(10,2)" json:"price"`
	Purchased bool           `gorm:"column:purchased;not null;default:false" json:"purchased"`
	CreatedAt int64          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt int64          `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Item) TableName() string { return "market_items" }
