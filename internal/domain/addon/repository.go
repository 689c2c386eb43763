package addon

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Item, error)
	Search(ctx context.Context, text string) ([]Item, error)
	Upsert(ctx context.Context, it *Item) error
	BulkUpsert(ctx context.Context, items []Item) (int, error)
}
