package product

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Product, error)
	Search(ctx context.Context, text string) ([]Product, error)
	Upsert(ctx context.Context, p *Product) error
	BulkUpsert(ctx context.Context, items []Product) (int, error)
}
