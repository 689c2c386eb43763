package productmock

import (
	"context"

	domain "resto-pos-backend/internal/domain/product"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetByIDFn    func(ctx context.Context, id uint) (*domain.Product, error)
	SearchFn     func(ctx context.Context, text string) ([]domain.Product, error)
	UpsertFn     func(ctx context.Context, p *domain.Product) error
	BulkUpsertFn func(ctx context.Context, items []domain.Product) (int, error)
}

func (m *Repo) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Search(ctx context.Context, text string) ([]domain.Product, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, text)
	}
	return nil, nil
}

func (m *Repo) Upsert(ctx context.Context, p *domain.Product) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, p)
	}
	return nil
}

func (m *Repo) BulkUpsert(ctx context.Context, items []domain.Product) (int, error) {
	if m.BulkUpsertFn != nil {
		return m.BulkUpsertFn(ctx, items)
	}
	return len(items), nil
}
