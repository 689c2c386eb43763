package employeemock

import (
	"context"

	domain "resto-pos-backend/internal/domain/employee"
)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	GetByIDFn      func(ctx context.Context, id uint) (*domain.Employee, error)
	SearchFn       func(ctx context.Context, text string) ([]domain.Employee, error)
	UpsertFn       func(ctx context.Context, e *domain.Employee) error
	BulkUpsertFn   func(ctx context.Context, items []domain.Employee) (int, error)
	CountByPhoneFn func(ctx context.Context, phone string, excludeID uint) (int64, error)
}

func (m *Repo) GetByID(ctx context.Context, id uint) (*domain.Employee, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) Search(ctx context.Context, text string) ([]domain.Employee, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, text)
	}
	return nil, nil
}

func (m *Repo) Upsert(ctx context.Context, e *domain.Employee) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, e)
	}
	return nil
}

func (m *Repo) BulkUpsert(ctx context.Context, items []domain.Employee) (int, error) {
	if m.BulkUpsertFn != nil {
		return m.BulkUpsertFn(ctx, items)
	}
	return len(items), nil
}

func (m *Repo) CountByPhone(ctx context.Context, phone string, excludeID uint) (int64, error) {
	if m.CountByPhoneFn != nil {
		return m.CountByPhoneFn(ctx, phone, excludeID)
	}
	return 0, nil
}
