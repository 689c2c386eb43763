package employee

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Employee, error)
	// Search lists employees whose name, phone or position matches text;
	// "" lists all.
	Search(ctx context.Context, text string) ([]Employee, error)
	// Upsert creates (ID 0) or updates (ID set) one employee.
	Upsert(ctx context.Context, e *Employee) error
	// BulkUpsert writes all items in one transaction and reports the count.
	BulkUpsert(ctx context.Context, items []Employee) (int, error)
	// CountByPhone counts other employees holding this phone number.
	CountByPhone(ctx context.Context, phone string, excludeID uint) (int64, error)
}
