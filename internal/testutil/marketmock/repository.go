package marketmock

import (
	"context"

	domain "resto-pos-backend/internal/domain/market"
)

// ListRepo is a function-backed mock that satisfies domain.ListRepository.
type ListRepo struct {
	GetByIDFn    func(ctx context.Context, id uint) (*domain.List, error)
	SearchFn     func(ctx context.Context, text string) ([]domain.List, error)
	UpsertFn     func(ctx context.Context, l *domain.List) error
	BulkUpsertFn func(ctx context.Context, lists []domain.List) (int, error)
}

func (m *ListRepo) GetByID(ctx context.Context, id uint) (*domain.List, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrListNotFound
}

func (m *ListRepo) Search(ctx context.Context, text string) ([]domain.List, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, text)
	}
	return nil, nil
}

func (m *ListRepo) Upsert(ctx context.Context, l *domain.List) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, l)
	}
	return nil
}

func (m *ListRepo) BulkUpsert(ctx context.Context, lists []domain.List) (int, error) {
	if m.BulkUpsertFn != nil {
		return m.BulkUpsertFn(ctx, lists)
	}
	return len(lists), nil
}

// ItemRepo is a function-backed mock that satisfies domain.ItemRepository.
type ItemRepo struct {
	GetByIDFn      func(ctx context.Context, id uint) (*domain.Item, error)
	SearchFn       func(ctx context.Context, text string) ([]domain.Item, error)
	UpsertFn       func(ctx context.Context, it *domain.Item) error
	BulkUpsertFn   func(ctx context.Context, items []domain.Item) (int, error)
	SetPurchasedFn func(ctx context.Context, id uint, purchased bool) error
}

func (m *ItemRepo) GetByID(ctx context.Context, id uint) (*domain.Item, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrItemNotFound
}

func (m *ItemRepo) Search(ctx context.Context, text string) ([]domain.Item, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, text)
	}
	return nil, nil
}

func (m *ItemRepo) Upsert(ctx context.Context, it *domain.Item) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, it)
	}
	return nil
}

func (m *ItemRepo) BulkUpsert(ctx context.Context, items []domain.Item) (int, error) {
	if m.BulkUpsertFn != nil {
		return m.BulkUpsertFn(ctx, items)
	}
	return len(items), nil
}

func (m *ItemRepo) SetPurchased(ctx context.Context, id uint, purchased bool) error {
	if m.SetPurchasedFn != nil {
		return m.SetPurchasedFn(ctx, id, purchased)
	}
	return nil
}
