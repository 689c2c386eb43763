package addon

import (
	"context"
	"errors"
	"strconv"
	"time"

	"resto-pos-backend/internal/analytics"
	domain "resto-pos-backend/internal/domain/addon"
	catDomain "resto-pos-backend/internal/domain/category"
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
	Name       string `json:"name"`
	Price      string `json:"price"`
	CategoryID uint   `json:"category_id"`
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
	it, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	return Draft{
		Name:       it.Name,
		Price:      strconv.FormatFloat(it.Price, 'f', -1, 64),
		CategoryID: it.CategoryID,
	}, nil
}

func (u *Usecase) persistDraft(ctx context.Context, d Draft, id uint) (string, error) {
	price, err := strconv.ParseFloat(d.Price, 64)
	if err != nil {
		return "", errors.New("price must be a number")
	}
	it := &domain.Item{ID: id, Name: d.Name, Price: price, CategoryID: d.CategoryID}
	now := time.Now().UTC().UnixMilli()
	if id == 0 {
		it.CreatedAt = now
	} else {
		cur, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		it.CreatedAt = cur.CreatedAt
		it.UpdatedAt = now
	}
	if err := u.repo.Upsert(ctx, it); err != nil {
		return "", err
	}
	if id == 0 {
		u.track.Add(ctx, "addon_created", 1)
		return "add-on item created", nil
	}
	u.track.Add(ctx, "addon_updated", 1)
	return "add-on item updated", nil
}

func (u *Usecase) Settings() *listops.Controller[domain.Item] {
	return listops.New(listops.Config[domain.Item]{
		ID:     func(it domain.Item) uint { return it.ID },
		Search: u.repo.Search,
		Commit: func(ctx context.Context, items []domain.Item) (int, error) {
			n, err := u.repo.BulkUpsert(ctx, items)
			if err == nil {
				u.track.Add(ctx, "addon_imported", n)
			}
			return n, err
		},
		Label: "add-on items",
	})
}

func (u *Usecase) Export(ctx context.Context, ctl *listops.Controller[domain.Item]) (string, int) {
	var name string
	n, ok := ctl.ExportWith(ctx, func(_ context.Context, items []domain.Item) error {
		f, fname, err := u.store.CreateForWrite("addon-items")
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
	u.track.Add(ctx, "addon_exported", n)
	return name, n
}

func (u *Usecase) ImportFile(_ context.Context, ctl *listops.Controller[domain.Item], name string) bool {
	f, err := u.store.OpenForRead(name)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	defer f.Close()
	items, err := transfer.ReadRecords[domain.Item](f)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	ctl.SetImported(items)
	return true
}

func (u *Usecase) Get(ctx context.Context, id uint) (*domain.Item, error) {
	return u.repo.GetByID(ctx, id)
}
