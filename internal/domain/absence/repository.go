package absence

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (*Absence, error)
	Search(ctx context.Context, text string) ([]Absence, error)
	Upsert(ctx context.Context, a *Absence) error
	BulkUpsert(ctx context.Context, items []Absence) (int, error)
}
