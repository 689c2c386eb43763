package category

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Category, error)
	Search(ctx context.Context, text string) ([]Category, error)
	Upsert(ctx context.Context, c *Category) error
	BulkUpsert(ctx context.Context, items []Category) (int, error)
	// CountByName counts other categories holding this name.
	CountByName(ctx context.Context, name string, excludeID uint) (int64, error)
}
