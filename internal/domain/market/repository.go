package market

import "context"

type ListRepository interface {
	GetByID(ctx context.Context, id uint) (*List, error)
	Search(ctx context.Context, text string) ([]List, error)
	Upsert(ctx context.Context, l *List) error
	BulkUpsert(ctx context.Context, lists []List) (int, error)
}

type ItemRepository interface {
	GetByID(ctx context.Context, id uint) (*Item, error)
	Search(ctx context.Context, text string) ([]Item, error)
	Upsert(ctx context.Context, it *Item) error
	BulkUpsert(ctx context.Context, items []Item) (int, error)
	// SetPurchased flips the purchased flag in place.
	SetPurchased(ctx context.Context, id uint, purchased bool) error
}
