package address

import (
	"context"
	"time"

	"resto-pos-backend/internal/analytics"
	domain "resto-pos-backend/internal/domain/address"
	"resto-pos-backend/internal/form"
	"resto-pos-backend/internal/listops"
	"resto-pos-backend/internal/validation"
)

const (
	FieldLabel   = "label"
	FieldStreet  = "street"
	FieldCity    = "city"
	FieldPincode = "pincode"
	FieldPhone   = "phone"
)

type Draft struct {
	Label   string `json:"label"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone"`
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

func (u *Usecase) Form(id uint) *form.Controller[Draft] {
	return form.New(form.Config[Draft]{
		Fields: map[string]form.Validator[Draft]{
			FieldLabel: func(_ context.Context, d Draft, _ uint) string {
				return validation.Required(d.Label, "label")
			},
			FieldStreet: func(_ context.Context, d Draft, _ uint) string {
				return validation.Required(d.Street, "street")
			},
			FieldCity: func(_ context.Context, d Draft, _ uint) string {
				return validation.Required(d.City, "city")
			},
			FieldPincode: func(_ context.Context, d Draft, _ uint) string {
				return validation.Pincode(d.Pincode)
			},
			// phone is optional on addresses; validate only when present
			FieldPhone: func(_ context.Context, d Draft, _ uint) string {
				if d.Phone == "" {
					return ""
				}
				return validation.Phone(d.Phone)
			},
		},
		Load:           u.loadDraft,
		Persist:        u.persistDraft,
		LoadErrMessage: domain.ErrNotFound.Error(),
	}, id)
}

func (u *Usecase) loadDraft(ctx context.Context, id uint) (Draft, error) {
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	return Draft{Label: a.Label, Street: a.Street, City: a.City, Pincode: a.Pincode, Phone: a.Phone}, nil
}

func (u *Usecase) persistDraft(ctx context.Context, d Draft, id uint) (string, error) {
	a := &domain.Address{ID: id, Label: d.Label, Street: d.Street, City: d.City, Pincode: d.Pincode, Phone: d.Phone}
	now := time.Now().UTC().UnixMilli()
	if id == 0 {
		a.CreatedAt = now
	} else {
		cur, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		a.CreatedAt = cur.CreatedAt
		a.UpdatedAt = now
	}
	if err := u.repo.Upsert(ctx, a); err != nil {
		return "", err
	}
	if id == 0 {
		u.track.Add(ctx, "address_created", 1)
		return "address created", nil
	}
	u.track.Add(ctx, "address_updated", 1)
	return "address updated", nil
}

func (u *Usecase) Settings() *listops.Controller[domain.Address] {
	return listops.New(listops.Config[domain.Address]{
		ID:     func(a domain.Address) uint { return a.ID },
		Search: u.repo.Search,
		Commit: func(ctx context.Context, items []domain.Address) (int, error) {
			return u.repo.BulkUpsert(ctx, items)
		},
		Label: "addresses",
	})
}

func (u *Usecase) Get(ctx context.Context, id uint) (*domain.Address, error) {
	return u.repo.GetByID(ctx, id)
}
