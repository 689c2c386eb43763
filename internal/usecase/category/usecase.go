package category

import (
	"context"
	"time"

	"resto-pos-backend/internal/analytics"
	domain "resto-pos-backend/internal/domain/category"
	"resto-pos-backend/internal/form"
	"resto-pos-backend/internal/listops"
	"resto-pos-backend/internal/outbox"
	"resto-pos-backend/internal/transfer"
	"resto-pos-backend/internal/validation"
)

const FieldName = "name"

type Draft struct {
	Name string `json:"name"`
}

type Usecase struct {
	repo  domain.Repository
	store *transfer.Store
	track analytics.Tracker
}

func NewUsecase(r domain.Repository, store *transfer.Store, track analytics.Tracker) *Usecase {
	if track == nil {
		track = analytics.Noop{}
	}
	return &Usecase{repo: r, store: store, track: track}
}

func (u *Usecase) Form(id uint) *form.Controller[Draft] {
	return form.New(form.Config[Draft]{
		Fields: map[string]form.Validator[Draft]{
			FieldName: func(ctx context.Context, d Draft, excludeID uint) string {
				if msg := validation.Required(d.Name, "name"); msg != "" {
					return msg
				}
				n, err := u.repo.CountByName(ctx, d.Name, excludeID)
				if err != nil {
					return "could not verify name"
				}
				if n > 0 {
					return "category already exists"
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
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	return Draft{Name: c.Name}, nil
}

func (u *Usecase) persistDraft(ctx context.Context, d Draft, id uint) (string, error) {
	c := &domain.Category{ID: id, Name: d.Name}
	now := time.Now().UTC().UnixMilli()
	if id == 0 {
		c.CreatedAt = now
	} else {
		cur, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		c.CreatedAt = cur.CreatedAt
		c.UpdatedAt = now
	}
	if err := u.repo.Upsert(ctx, c); err != nil {
		return "", err
	}
	if id == 0 {
		u.track.Add(ctx, "category_created", 1)
		return "category created", nil
	}
	u.track.Add(ctx, "category_updated", 1)
	return "category updated", nil
}

func (u *Usecase) Settings() *listops.Controller[domain.Category] {
	return listops.New(listops.Config[domain.Category]{
		ID:     func(c domain.Category) uint { return c.ID },
		Search: u.repo.Search,
		Commit: func(ctx context.Context, items []domain.Category) (int, error) {
			n, err := u.repo.BulkUpsert(ctx, items)
			if err == nil {
				u.track.Add(ctx, "category_imported", n)
			}
			return n, err
		},
		Label: "categories",
	})
}

func (u *Usecase) Export(ctx context.Context, ctl *listops.Controller[domain.Category]) (string, int) {
	var name string
	n, ok := ctl.ExportWith(ctx, func(_ context.Context, items []domain.Category) error {
		f, fname, err := u.store.CreateForWrite("categories")
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
	u.track.Add(ctx, "category_exported", n)
	return name, n
}

func (u *Usecase) ImportFile(_ context.Context, ctl *listops.Controller[domain.Category], name string) bool {
	f, err := u.store.OpenForRead(name)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	defer f.Close()
	items, err := transfer.ReadRecords[domain.Category](f)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	ctl.SetImported(items)
	return true
}

func (u *Usecase) Get(ctx context.Context, id uint) (*domain.Category, error) {
	return u.repo.GetByID(ctx, id)
}
