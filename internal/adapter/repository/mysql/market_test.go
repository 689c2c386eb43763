package mysql

import (
	"context"
	"errors"
	"testing"

	marketDomain "resto-pos-backend/internal/domain/market"

	"gorm.io/gorm"
)

type marketListSQLite struct {
	ID         uint           `gorm:"primaryKey;column:id"`
	Title      string         `gorm:"column:title"`
	PlannedFor int64          `gorm:"column:planned_for"`
	CreatedAt  int64          `gorm:"column:created_at"`
	UpdatedAt  int64          `gorm:"column:updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (marketListSQLite) TableName() string { return "market_lists" }

type marketItemSQLite struct {
	ID        uint           `gorm:"primaryKey;column:id"`
	ListID    uint           `gorm:"column:list_id"`
	Name      string         `gorm:"column:name"`
	Quantity  float64        `gorm:"column:quantity"`
	Unit      string         `gorm:"column:unit"`
	Price     float64        `gorm:"column:price"`
	Purchased bool           `gorm:"column:purchased"`
	CreatedAt int64          `gorm:"column:created_at"`
	UpdatedAt int64          `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (marketItemSQLite) TableName() string { return "market_items" }

func TestMarketListRepo_SearchByTitle(t *testing.T) {
	db := openTestDB(t, &marketListSQLite{})
	r := NewMarketListRepository(db)
	ctx := context.Background()

	for _, title := range []string{"Sunday vegetables", "Spices restock"} {
		if err := r.Upsert(ctx, &marketDomain.List{Title: title, PlannedFor: 1, CreatedAt: 1}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	got, err := r.Search(ctx, "vegetables")
	if err != nil || len(got) != 1 || got[0].Title != "Sunday vegetables" {
		t.Fatalf("got %+v err=%v", got, err)
	}
}

func TestMarketListRepo_GetByID_NotFound(t *testing.T) {
	r := NewMarketListRepository(openTestDB(t, &marketListSQLite{}))
	if _, err := r.GetByID(context.Background(), 5); !errors.Is(err, marketDomain.ErrListNotFound) {
		t.Fatalf("err %v", err)
	}
}

func seedItems(t *testing.T, r *MarketItemRepository) []uint {
	t.Helper()
	ctx := context.Background()
	rows := []*marketDomain.Item{
		{ListID: 1, Name: "Tomatoes", Quantity: 2, Unit: "kg", CreatedAt: 1},
		{ListID: 1, Name: "Onions", Quantity: 1, Unit: "kg", CreatedAt: 2},
	}
	var ids []uint
	for _, it := range rows {
		if err := r.Upsert(ctx, it); err != nil {
			t.Fatalf("seed: %v", err)
		}
		ids = append(ids, it.ID)
	}
	return ids
}

func TestMarketItemRepo_SetPurchased(t *testing.T) {
	r := NewMarketItemRepository(openTestDB(t, &marketItemSQLite{}))
	ids := seedItems(t, r)
	ctx := context.Background()

	if err := r.SetPurchased(ctx, ids[0], true); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := r.GetByID(ctx, ids[0])
	if !got.Purchased {
		t.Fatalf("got %+v", got)
	}
	if err := r.SetPurchased(ctx, ids[0], false); err != nil {
		t.Fatalf("unset: %v", err)
	}
	got, _ = r.GetByID(ctx, ids[0])
	if got.Purchased {
		t.Fatalf("got %+v", got)
	}
}

func TestMarketItemRepo_SetPurchased_MissingRow(t *testing.T) {
	r := NewMarketItemRepository(openTestDB(t, &marketItemSQLite{}))
	err := r.SetPurchased(context.Background(), 999, true)
	if !errors.Is(err, marketDomain.ErrItemNotFound) {
		t.Fatalf("err %v", err)
	}
}

func TestMarketItemRepo_BulkUpsertKeepsIDs(t *testing.T) {
	r := NewMarketItemRepository(openTestDB(t, &marketItemSQLite{}))
	ids := seedItems(t, r)
	ctx := context.Background()

	batch := []marketDomain.Item{
		{ID: ids[1], ListID: 1, Name: "Red Onions", Quantity: 1.5, Unit: "kg", CreatedAt: 2, UpdatedAt: 9},
		{ListID: 1, Name: "Garlic", Quantity: 0.5, Unit: "kg", CreatedAt: 9},
	}
	n, err := r.BulkUpsert(ctx, batch)
	if err != nil || n != 2 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	got, _ := r.GetByID(ctx, ids[1])
	if got.Name != "Red Onions" || got.Quantity != 1.5 {
		t.Fatalf("got %+v", got)
	}
	all, _ := r.Search(ctx, "")
	if len(all) != 3 {
		t.Fatalf("rows %d", len(all))
	}
}
