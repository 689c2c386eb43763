package employee

import (
	"context"
	"testing"
	"time"

	domain "resto-pos-backend/internal/domain/employee"
	"resto-pos-backend/internal/testutil/employeemock"
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

func TestForm_CreateSetsCreatedAtOnce(t *testing.T) {
	var saved *domain.Employee
	repo := &employeemock.Repo{
		UpsertFn: func(_ context.Context, e *domain.Employee) error {
			saved = e
			return nil
		},
	}
	uc := NewUsecase(repo, testStore(t), nil)

	f := uc.Form(0)
	defer f.Close()
	f.Set(func(d Draft) Draft {
		d.Name = "Asha"
		d.Phone = "0812345678"
		d.Salary = "4500000"
		d.Position = "chef"
		return d
	}, FieldName, FieldPhone, FieldSalary, FieldPosition)

	if errs := f.Submit(context.Background()); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	sig, ok := f.Signals().TryRecv()
	if !ok || sig.Err || sig.Message != "employee created" {
		t.Fatalf("signal %+v ok=%v", sig, ok)
	}
	if saved == nil || saved.ID != 0 {
		t.Fatalf("saved %+v", saved)
	}
	if saved.CreatedAt == 0 {
		t.Fatal("CreatedAt not set on create")
	}
	if saved.UpdatedAt != 0 {
		t.Fatal("UpdatedAt must stay zero on create")
	}
	if saved.Salary != 4500000 {
		t.Fatalf("salary parsed to %v", saved.Salary)
	}
}

func TestForm_UpdatePreservesCreatedAt(t *testing.T) {
	created := time.Now().Add(-24*time.Hour).UTC().UnixMilli()
	existing := &domain.Employee{
		ID: 7, Name: "Asha", Phone: "0812345678", Salary: 4500000,
		Position: "chef", CreatedAt: created,
	}
	var saved *domain.Employee
	repo := &employeemock.Repo{
		GetByIDFn: func(_ context.Context, id uint) (*domain.Employee, error) {
			if id != 7 {
				return nil, domain.ErrNotFound
			}
			return existing, nil
		},
		UpsertFn: func(_ context.Context, e *domain.Employee) error {
			saved = e
			return nil
		},
	}
	uc := NewUsecase(repo, testStore(t), nil)

	f := uc.Form(7)
	defer f.Close()
	f.Load(context.Background())
	if d := f.Draft(); d.Name != "Asha" || d.Salary != "4500000" {
		t.Fatalf("draft not loaded: %+v", d)
	}

	f.Set(func(d Draft) Draft { d.Salary = "5000000"; return d }, FieldSalary)
	if errs := f.Submit(context.Background()); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	sig, _ := f.Signals().TryRecv()
	if sig.Message != "employee updated" {
		t.Fatalf("signal %+v", sig)
	}
	if saved.CreatedAt != created {
		t.Fatalf("CreatedAt changed: %d -> %d", created, saved.CreatedAt)
	}
	if saved.UpdatedAt == 0 {
		t.Fatal("UpdatedAt not set on update")
	}
}

func TestForm_PhoneUniquenessBlocksSubmit(t *testing.T) {
	repo := &employeemock.Repo{
		CountByPhoneFn: func(_ context.Context, phone string, _ uint) (int64, error) {
			if phone == "0812345678" {
				return 1, nil
			}
			return 0, nil
		},
		UpsertFn: func(context.Context, *domain.Employee) error {
			t.Fatal("persist must not run")
			return nil
		},
	}
	uc := NewUsecase(repo, testStore(t), nil)

	f := uc.Form(0)
	defer f.Close()
	f.Set(func(d Draft) Draft {
		d.Name = "Budi"
		d.Phone = "0812345678"
		d.Salary = "3000000"
		d.Position = "waiter"
		return d
	}, FieldName, FieldPhone, FieldSalary, FieldPosition)

	errs := f.Submit(context.Background())
	if errs[FieldPhone] != "phone is already in use" {
		t.Fatalf("errs %v", errs)
	}
}

func TestForm_LoadMissingEmployeeSignals(t *testing.T) {
	uc := NewUsecase(&employeemock.Repo{}, testStore(t), nil)
	f := uc.Form(99)
	defer f.Close()

	f.Load(context.Background())
	sig, ok := f.Signals().TryRecv()
	if !ok || !sig.Err || sig.Message != domain.ErrNotFound.Error() {
		t.Fatalf("signal %+v ok=%v", sig, ok)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	rows := []domain.Employee{
		{ID: 1, Name: "Asha", Phone: "0812345678", Salary: 4500000, Position: "chef"},
		{ID: 2, Name: "Budi", Phone: "0812345679", Salary: 3000000, Position: "waiter"},
	}
	var committed []domain.Employee
	repo := &employeemock.Repo{
		SearchFn: func(context.Context, string) ([]domain.Employee, error) {
			return rows, nil
		},
		BulkUpsertFn: func(_ context.Context, items []domain.Employee) (int, error) {
			committed = items
			return len(items), nil
		},
	}
	uc := NewUsecase(repo, testStore(t), nil)
	ctx := context.Background()

	// export everything
	exp := uc.Settings()
	defer exp.Close()
	if _, err := exp.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	name, n := uc.Export(ctx, exp)
	if n != 2 || name == "" {
		t.Fatalf("export n=%d name=%q", n, name)
	}
	sig, _ := exp.Signals().TryRecv()
	if sig.Err || sig.Message != "exported 2 employees" {
		t.Fatalf("signal %+v", sig)
	}

	// import the file into a fresh controller and commit a subset
	imp := uc.Settings()
	defer imp.Close()
	if !uc.ImportFile(ctx, imp, name) {
		sig, _ := imp.Signals().TryRecv()
		t.Fatalf("import failed: %+v", sig)
	}
	if len(imp.ImportBuffer()) != 2 {
		t.Fatalf("buffer %v", imp.ImportBuffer())
	}
	imp.Toggle(2)
	n, ok := imp.CommitImport(ctx)
	if !ok || n != 1 {
		t.Fatalf("commit n=%d ok=%v", n, ok)
	}
	if len(committed) != 1 || committed[0].ID != 2 {
		t.Fatalf("committed %+v", committed)
	}
}

func TestImportFile_MissingFileRoutedToOutbox(t *testing.T) {
	uc := NewUsecase(&employeemock.Repo{}, testStore(t), nil)
	ctl := uc.Settings()
	defer ctl.Close()

	if uc.ImportFile(context.Background(), ctl, "no-such-file.json") {
		t.Fatal("expected failure")
	}
	sig, ok := ctl.Signals().TryRecv()
	if !ok || !sig.Err {
		t.Fatalf("signal %+v ok=%v", sig, ok)
	}
}
