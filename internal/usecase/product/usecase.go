package product

import (
	"context"
	"errors"
	"strconv"
	"time"

	"resto-pos-backend/internal/analytics"
	catDomain "resto-pos-backend/internal/domain/category"
	domain "resto-pos-backend/internal/domain/product"
	"resto-pos-backend/internal/form"
	"resto-pos-backend/internal/listops"
	"resto-pos-backend/internal/outbox"
	"resto-pos-backend/internal/transfer"
	"resto-pos-backend/internal/validation"
)

const (
	FieldName     = "name"
	FieldPrice    = "price"
	FieldCategory = "category"
)

type Draft struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	CategoryID  uint   `json:"category_id"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

type Usecase struct {
	repo       domain.Repository
	categories catDomain.Repository
	store      *transfer.Store
	track      analytics.Tracker
}

func NewUsecase(r domain.Repository, categories catDomain.Repository, store *transfer.Store, track analytics.Tracker) *Usecase {
	if track == nil {
		track = analytics.Noop{}
	}
	return &Usecase{repo: r, categories: categories, store: store, track: track}
}

func (u *Usecase) Form(id uint) *form.Controller[Draft] {
	return form.New(form.Config[Draft]{
		Fields: map[string]form.Validator[Draft]{
			FieldName: func(_ context.Context, d Draft, _ uint) string {
				return validation.Required(d.Name, "name")
			},
			FieldPrice: func(_ context.Context, d Draft, _ uint) string {
				return validation.Money(d.Price, "price")
			},
			FieldCategory: func(ctx context.Context, d Draft, _ uint) string {
				if msg := validation.Selected(d.CategoryID, "category"); msg != "" {
					return msg
				}
				if _, err := u.categories.GetByID(ctx, d.CategoryID); err != nil {
					return "category not found"
				}
				return ""
			},
		},
		Load:           u.loadDraft,
		Persist:        u.persistDraft,
		LoadErrMessage: domain.ErrNotFound.Error(),
	}, id)
}

func (u *Usecase) loadDraft(ctx context.Context, id uint) (Draft, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	return Draft{
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		CategoryID:  p.CategoryID,
		Description: p.Description,
		Available:   p.Available,
	}, nil
}

func (u *Usecase) persistDraft(ctx context.Context, d Draft, id uint) (string, error) {
	price, err := strconv.ParseFloat(d.Price, 64)
	if err != nil {
		return "", errors.New("price must be a number")
	}
	p := &domain.Product{
		ID:          id,
		Name:        d.Name,
		Price:       price,
		CategoryID:  d.CategoryID,
		Description: d.Description,
		Available:   d.Available,
	}
	now := time.Now().UTC().UnixMilli()
	if id == 0 {
		p.CreatedAt = now
	} else {
		cur, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		p.CreatedAt = cur.CreatedAt
		p.UpdatedAt = now
	}
	if err := u.repo.Upsert(ctx, p); err != nil {
		return "", err
	}
	if id == 0 {
		u.track.Add(ctx, "product_created", 1)
		return "product created", nil
	}
	u.track.Add(ctx, "product_updated", 1)
	return "product updated", nil
}

func (u *Usecase) Settings() *listops.Controller[domain.Product] {
	return listops.New(listops.Config[domain.Product]{
		ID:     func(p domain.Product) uint { return p.ID },
		Search: u.repo.Search,
		Commit: func(ctx context.Context, items []domain.Product) (int, error) {
			n, err := u.repo.BulkUpsert(ctx, items)
			if err == nil {
				u.track.Add(ctx, "product_imported", n)
			}
			return n, err
		},
		Label: "products",
	})
}

func (u *Usecase) Export(ctx context.Context, ctl *listops.Controller[domain.Product]) (string, int) {
	var name string
	n, ok := ctl.ExportWith(ctx, func(_ context.Context, items []domain.Product) error {
		f, fname, err := u.store.CreateForWrite("products")
		if err != nil {
			return err
		}
		defer f.Close()
		name = fname
		return transfer.WriteRecords(f, items)
	})
	if !ok {
		return "", 0
	}
	u.track.Add(ctx, "product_exported", n)
	return name, n
}

func (u *Usecase) ImportFile(_ context.Context, ctl *listops.Controller[domain.Product], name string) bool {
	f, err := u.store.OpenForRead(name)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	defer f.Close()
	items, err := transfer.ReadRecords[domain.Product](f)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	ctl.SetImported(items)
	return true
}

func (u *Usecase) Get(ctx context.Context, id uint) (*domain.Product, error) {
	return u.repo.GetByID(ctx, id)
}
