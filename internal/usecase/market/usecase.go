package market

import (
	"context"
	"errors"
	"strconv"
	"time"

	"resto-pos-backend/internal/analytics"
	domain "resto-pos-backend/internal/domain/market"
	"resto-pos-backend/internal/form"
	"resto-pos-backend/internal/listops"
	"resto-pos-backend/internal/outbox"
	"resto-pos-backend/internal/transfer"
	"resto-pos-backend/internal/validation"
)

// Market list form fields.
const (
	FieldTitle      = "title"
	FieldPlannedFor = "planned_for"
)

// Market item form fields.
const (
	FieldItemName = "name"
	FieldQuantity = "quantity"
	FieldPrice    = "price"
	FieldList     = "list"
)

type ListDraft struct {
	Title      string `json:"title"`
	PlannedFor int64  `json:"planned_for"`
}

type ItemDraft struct {
	ListID   uint   `json:"list_id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Price    string `json:"price"`
}

type Usecase struct {
	lists domain.ListRepository
	items domain.ItemRepository
	store *transfer.Store
	track analytics.Tracker
}

func NewUsecase(lists domain.ListRepository, items domain.ItemRepository, store *transfer.Store, track analytics.Tracker) *Usecase {
	if track == nil {
		track = analytics.Noop{}
	}
	return &Usecase{lists: lists, items: items, store: store, track: track}
}

// --- market list form ---

func (u *Usecase) ListForm(id uint) *form.Controller[ListDraft] {
	return form.New(form.Config[ListDraft]{
		Fields: map[string]form.Validator[ListDraft]{
			FieldTitle: func(_ context.Context, d ListDraft, _ uint) string {
				return validation.Required(d.Title, "title")
			},
			FieldPlannedFor: func(_ context.Context, d ListDraft, _ uint) string {
				return validation.TimestampMS(d.PlannedFor, "shopping day")
			},
		},
		Load: func(ctx context.Context, id uint) (ListDraft, error) {
			l, err := u.lists.GetByID(ctx, id)
			if err != nil {
				return ListDraft{}, err
			}
			return ListDraft{Title: l.Title, PlannedFor: l.PlannedFor}, nil
		},
		Persist:        u.persistList,
		LoadErrMessage: domain.ErrListNotFound.Error(),
	}, id)
}

func (u *Usecase) persistList(ctx context.Context, d ListDraft, id uint) (string, error) {
	l := &domain.List{ID: id, Title: d.Title, PlannedFor: d.PlannedFor}
	now := time.Now().UTC().UnixMilli()
	if id == 0 {
		l.CreatedAt = now
	} else {
		cur, err := u.lists.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		l.CreatedAt = cur.CreatedAt
		l.UpdatedAt = now
	}
	if err := u.lists.Upsert(ctx, l); err != nil {
		return "", err
	}
	if id == 0 {
		u.track.Add(ctx, "market_list_created", 1)
		return "market list created", nil
	}
	u.track.Add(ctx, "market_list_updated", 1)
	return "market list updated", nil
}

// --- market item form ---

func (u *Usecase) ItemForm(id uint) *form.Controller[ItemDraft] {
	return form.New(form.Config[ItemDraft]{
		Fields: map[string]form.Validator[ItemDraft]{
			FieldItemName: func(_ context.Context, d ItemDraft, _ uint) string {
				return validation.Required(d.Name, "name")
			},
			FieldQuantity: func(_ context.Context, d ItemDraft, _ uint) string {
				return validation.Quantity(d.Quantity)
			},
			// price is optional until the item is actually bought
			FieldPrice: func(_ context.Context, d ItemDraft, _ uint) string {
				if d.Price == "" {
					return ""
				}
				return validation.Money(d.Price, "price")
			},
			FieldList: func(ctx context.Context, d ItemDraft, _ uint) string {
				if msg := validation.Selected(d.ListID, "market list"); msg != "" {
					return msg
				}
				if _, err := u.lists.GetByID(ctx, d.ListID); err != nil {
					return "market list not found"
				}
				return ""
			},
		},
		Load: func(ctx context.Context, id uint) (ItemDraft, error) {
			it, err := u.items.GetByID(ctx, id)
			if err != nil {
				return ItemDraft{}, err
			}
			price := ""
			if it.Price > 0 {
				price = strconv.FormatFloat(it.Price, 'f', -1, 64)
			}
			return ItemDraft{
				ListID:   it.ListID,
				Name:     it.Name,
				Quantity: strconv.FormatFloat(it.Quantity, 'f', -1, 64),
				Unit:     it.Unit,
				Price:    price,
			}, nil
		},
		Persist:        u.persistItem,
		LoadErrMessage: domain.ErrItemNotFound.Error(),
	}, id)
}

func (u *Usecase) persistItem(ctx context.Context, d ItemDraft, id uint) (string, error) {
	qty, err := strconv.ParseFloat(d.Quantity, 64)
	if err != nil {
		return "", errors.New("quantity must be a number")
	}
	var price float64
	if d.Price != "" {
		price, err = strconv.ParseFloat(d.Price, 64)
		if err != nil {
			return "", errors.New("price must be a number")
		}
	}
	it := &domain.Item{ID: id, ListID: d.ListID, Name: d.Name, Quantity: qty, Unit: d.Unit, Price: price}
	now := time.Now().UTC().UnixMilli()
	if id == 0 {
		it.CreatedAt = now
	} else {
		cur, err := u.items.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		it.CreatedAt = cur.CreatedAt
		it.Purchased = cur.Purchased
		it.UpdatedAt = now
	}
	if err := u.items.Upsert(ctx, it); err != nil {
		return "", err
	}
	if id == 0 {
		u.track.Add(ctx, "market_item_created", 1)
		return "market item created", nil
	}
	u.track.Add(ctx, "market_item_updated", 1)
	return "market item updated", nil
}

// TogglePurchased flips the bought flag on one item.
func (u *Usecase) TogglePurchased(ctx context.Context, id uint) error {
	it, err := u.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return u.items.SetPurchased(ctx, id, !it.Purchased)
}

// --- item list settings ---

func (u *Usecase) ItemSettings() *listops.Controller[domain.Item] {
	return listops.New(listops.Config[domain.Item]{
		ID:     func(it domain.Item) uint { return it.ID },
		Search: u.items.Search,
		Commit: func(ctx context.Context, items []domain.Item) (int, error) {
			n, err := u.items.BulkUpsert(ctx, items)
			if err == nil {
				u.track.Add(ctx, "market_item_imported", n)
			}
			return n, err
		},
		Label: "market items",
	})
}

func (u *Usecase) ExportItems(ctx context.Context, ctl *listops.Controller[domain.Item]) (string, int) {
	var name string
	n, ok := ctl.ExportWith(ctx, func(_ context.Context, items []domain.Item) error {
		f, fname, err := u.store.CreateForWrite("market-items")
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
	u.track.Add(ctx, "market_item_exported", n)
	return name, n
}

func (u *Usecase) ImportItemsFile(_ context.Context, ctl *listops.Controller[domain.Item], name string) bool {
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

func (u *Usecase) GetList(ctx context.Context, id uint) (*domain.List, error) {
	return u.lists.GetByID(ctx, id)
}

func (u *Usecase) GetItem(ctx context.Context, id uint) (*domain.Item, error) {
	return u.items.GetByID(ctx, id)
}

func (u *Usecase) ListSettings() *listops.Controller[domain.List] {
	return listops.New(listops.Config[domain.List]{
		ID:     func(l domain.List) uint { return l.ID },
		Search: u.lists.Search,
		Commit: func(ctx context.Context, lists []domain.List) (int, error) {
			return u.lists.BulkUpsert(ctx, lists)
		},
		Label: "market lists",
	})
}
