package paymentmock

import (
	"context"

	domain "resto-pos-backend/internal/domain/payment"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetByIDFn    func(ctx context.Context, id uint) (*domain.Payment, error)
	SearchFn     func(ctx context.Context, text string) ([]domain.Payment, error)
	UpsertFn     func(ctx context.Context, p *domain.Payment) error
	BulkUpsertFn func(ctx context.Context, items []domain.Payment) (int, error)
}

func (m *Repo) GetByID(ctx context.Context, id uint) (*domain.Payment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Search(ctx context.Context, text string) ([]domain.Payment, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, text)
	}
	return nil, nil
}

func (m *Repo) Upsert(ctx context.Context, p *domain.Payment) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, p)
	}
	return nil
}

func (m *Repo) BulkUpsert(ctx context.Context, items []domain.Payment) (int, error) {
	if m.BulkUpsertFn != nil {
		return m.BulkUpsertFn(ctx, items)
	}
	return len(items), nil
}
