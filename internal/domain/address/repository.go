package address

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Address, error)
	Search(ctx context.Context, text string) ([]Address, error)
	Upsert(ctx context.Context, a *Address) error
	BulkUpsert(ctx context.Context, items []Address) (int, error)
}
