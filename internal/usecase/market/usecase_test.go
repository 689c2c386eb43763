package market

import (
	"context"
	"testing"
	"time"

	domain "resto-pos-backend/internal/domain/market"
	"resto-pos-backend/internal/testutil/marketmock"
	"resto-pos-backend/internal/transfer"
)

func testStore(t *testing.T) *transfer.Store {
	t.Helper()
	s, err := transfer.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	return s
}

func lists() *marketmock.ListRepo {
	return &marketmock.ListRepo{
		GetByIDFn: func(_ context.Context, id uint) (*domain.List, error) {
			if id == 2 {
				return &domain.List{ID: 2, Title: "Sunday vegetables"}, nil
			}
			return nil, domain.ErrListNotFound
		},
	}
}

func TestListForm_Create(t *testing.T) {
	var saved *domain.List
	lr := lists()
	lr.UpsertFn = func(_ context.Context, l *domain.List) error {
		saved = l
		return nil
	}
	uc := NewUsecase(lr, &marketmock.ItemRepo{}, testStore(t), nil)

	f := uc.ListForm(0)
	defer f.Close()
	f.Set(func(d ListDraft) ListDraft {
		d.Title = "Sunday vegetables"
		d.PlannedFor = time.Now().UTC().UnixMilli()
		return d
	}, FieldTitle, FieldPlannedFor)

	if errs := f.Submit(context.Background()); errs != nil {
		t.Fatalf("errs %v", errs)
	}
	sig, _ := f.Signals().TryRecv()
	if sig.Err || sig.Message != "market list created" {
		t.Fatalf("signal %+v", sig)
	}
	if saved.CreatedAt == 0 {
		t.Fatal("CreatedAt not set")
	}
}

func TestItemForm_RequiresListReference(t *testing.T) {
	uc := NewUsecase(lists(), &marketmock.ItemRepo{}, testStore(t), nil)

	f := uc.ItemForm(0)
	defer f.Close()
	f.Set(func(d ItemDraft) ItemDraft {
		d.Name = "Tomatoes"
		d.Quantity = "2"
		d.Unit = "kg"
		return d
	}, FieldItemName, FieldQuantity, FieldList)

	errs := f.Submit(context.Background())
	if errs[FieldList] != "no market list selected" {
		t.Fatalf("errs %v", errs)
	}

	f.Set(func(d ItemDraft) ItemDraft { d.ListID = 99; return d }, FieldList)
	errs = f.Submit(context.Background())
	if errs[FieldList] != "market list not found" {
		t.Fatalf("errs %v", errs)
	}
}

func TestItemForm_PriceOptionalUntilBought(t *testing.T) {
	var saved *domain.Item
	ir := &marketmock.ItemRepo{
		UpsertFn: func(_ context.Context, it *domain.Item) error {
			saved = it
			return nil
		},
	}
	uc := NewUsecase(lists(), ir, testStore(t), nil)

	f := uc.ItemForm(0)
	defer f.Close()
	f.Set(func(d ItemDraft) ItemDraft {
		d.ListID = 2
		d.Name = "Tomatoes"
		d.Quantity = "2.5"
		d.Unit = "kg"
		return d
	}, FieldList, FieldItemName, FieldQuantity)

	if errs := f.Submit(context.Background()); errs != nil {
		t.Fatalf("errs %v", errs)
	}
	if saved.Quantity != 2.5 || saved.Price != 0 {
		t.Fatalf("saved %+v", saved)
	}
}

func TestTogglePurchased_Flips(t *testing.T) {
	var gotID uint
	var gotVal bool
	ir := &marketmock.ItemRepo{
		GetByIDFn: func(_ context.Context, id uint) (*domain.Item, error) {
			return &domain.Item{ID: id, Name: "Tomatoes", Purchased: true}, nil
		},
		SetPurchasedFn: func(_ context.Context, id uint, purchased bool) error {
			gotID, gotVal = id, purchased
			return nil
		},
	}
	uc := NewUsecase(lists(), ir, testStore(t), nil)

	if err := uc.TogglePurchased(context.Background(), 4); err != nil {
		t.Fatal(err)
	}
	if gotID != 4 || gotVal != false {
		t.Fatalf("got %d %v", gotID, gotVal)
	}
}

func TestTogglePurchased_MissingItem(t *testing.T) {
	uc := NewUsecase(lists(), &marketmock.ItemRepo{}, testStore(t), nil)
	if err := uc.TogglePurchased(context.Background(), 99); err != domain.ErrItemNotFound {
		t.Fatalf("err %v", err)
	}
}

func TestExportImportItems_RoundTrip(t *testing.T) {
	rows := []domain.Item{
		{ID: 1, ListID: 2, Name: "Tomatoes", Quantity: 2, Unit: "kg"},
		{ID: 2, ListID: 2, Name: "Onions", Quantity: 1, Unit: "kg"},
	}
	var committed []domain.Item
	ir := &marketmock.ItemRepo{
		SearchFn: func(context.Context, string) ([]domain.Item, error) { return rows, nil },
		BulkUpsertFn: func(_ context.Context, items []domain.Item) (int, error) {
			committed = items
			return len(items), nil
		},
	}
	uc := NewUsecase(lists(), ir, testStore(t), nil)
	ctx := context.Background()

	exp := uc.ItemSettings()
	defer exp.Close()
	if _, err := exp.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	name, n := uc.ExportItems(ctx, exp)
	if n != 2 || name == "" {
		t.Fatalf("export n=%d name=%q", n, name)
	}
	exp.Signals().TryRecv()

	imp := uc.ItemSettings()
	defer imp.Close()
	if !uc.ImportItemsFile(ctx, imp, name) {
		sig, _ := imp.Signals().TryRecv()
		t.Fatalf("import failed: %+v", sig)
	}
	if n, ok := imp.CommitImport(ctx); !ok || n != 2 {
		t.Fatalf("commit n=%d ok=%v", n, ok)
	}
	if len(committed) != 2 || committed[1].Name != "Onions" {
		t.Fatalf("committed %+v", committed)
	}
}
