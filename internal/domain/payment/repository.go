package payment

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Payment, error)
	Search(ctx context.Context, text string) ([]Payment, error)
	Upsert(ctx context.Context, p *Payment) error
	BulkUpsert(ctx context.Context, items []Payment) (int, error)
}
