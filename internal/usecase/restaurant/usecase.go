package restaurant

import (
	"context"
	"errors"
	"time"

	"resto-pos-backend/internal/analytics"
	domain "resto-pos-backend/internal/domain/restaurant"
	"resto-pos-backend/internal/form"
	"resto-pos-backend/internal/validation"
)

const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldCurrency = "currency"
)

type Draft struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	Currency string `json:"currency"`
}

type Usecase struct {
	repo  domain.Repository
	track analytics.Tracker
}

func NewUsecase(r domain.Repository, track analytics.Tracker) *Usecase {
	if track == nil {
		track = analytics.Noop{}
	}
	return &Usecase{repo: r, track: track}
}

// Form always edits the singleton profile. A missing row is create
// mode, not an error: the draft simply starts empty.
func (u *Usecase) Form() *form.Controller[Draft] {
	return form.New(form.Config[Draft]{
		Fields: map[string]form.Validator[Draft]{
			FieldName: func(_ context.Context, d Draft, _ uint) string {
				return validation.Required(d.Name, "restaurant name")
			},
			FieldPhone: func(_ context.Context, d Draft, _ uint) string {
				if d.Phone == "" {
					return ""
				}
				return validation.Phone(d.Phone)
			},
			FieldCurrency: func(_ context.Context, d Draft, _ uint) string {
				return validation.Required(d.Currency, "currency")
			},
		},
		Load: func(ctx context.Context, _ uint) (Draft, error) {
			p, err := u.repo.Get(ctx)
			if errors.Is(err, domain.ErrNotFound) {
				return Draft{}, nil
			}
			if err != nil {
				return Draft{}, err
			}
			return Draft{Name: p.Name, Phone: p.Phone, Street: p.Street, City: p.City, Currency: p.Currency}, nil
		},
		Persist: u.persistDraft,
	}, 1)
}

func (u *Usecase) persistDraft(ctx context.Context, d Draft, _ uint) (string, error) {
	p := &domain.Profile{Name: d.Name, Phone: d.Phone, Street: d.Street, City: d.City, Currency: d.Currency}
	now := time.Now().UTC().UnixMilli()
	cur, err := u.repo.Get(ctx)
	switch {
	case err == nil:
		p.CreatedAt = cur.CreatedAt
		p.UpdatedAt = now
	case errors.Is(err, domain.ErrNotFound):
		p.CreatedAt = now
	default:
		return "", err
	}
	if err := u.repo.Save(ctx, p); err != nil {
		return "", err
	}
	u.track.Add(ctx, "profile_updated", 1)
	return "restaurant profile saved", nil
}

func (u *Usecase) Profile(ctx context.Context) (*domain.Profile, error) {
	return u.repo.Get(ctx)
}
