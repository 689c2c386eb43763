package restaurant

import "context"

type Repository interface {
	Get(ctx context.Context) (*Profile, error)
	Save(ctx context.Context, p *Profile) error
}
