package categorymock

import (
	"context"

	domain "resto-pos-backend/internal/domain/category"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	GetByIDFn     func(ctx context.Context, id uint) (*domain.Category, error)
	SearchFn      func(ctx context.Context, text string) ([]domain.Category, error)
	UpsertFn      func(ctx context.Context, c *domain.Category) error
	BulkUpsertFn  func(ctx context.Context, items []domain.Category) (int, error)
	CountByNameFn func(ctx context.Context, name string, excludeID uint) (int64, error)
}

func (m *Repo) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Search(ctx context.Context, text string) ([]domain.Category, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, text)
	}
	return nil, nil
}

func (m *Repo) Upsert(ctx context.Context, c *domain.Category) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, c)
	}
	return nil
}

func (m *Repo) BulkUpsert(ctx context.Context, items []domain.Category) (int, error) {
	if m.BulkUpsertFn != nil {
		return m.BulkUpsertFn(ctx, items)
	}
	return len(items), nil
}

func (m *Repo) CountByName(ctx context.Context, name string, excludeID uint) (int64, error) {
	if m.CountByNameFn != nil {
		return m.CountByNameFn(ctx, name, excludeID)
	}
	return 0, nil
}
