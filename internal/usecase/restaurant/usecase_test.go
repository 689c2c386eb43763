package restaurant

import (
	"context"
	"testing"

	domain "resto-pos-backend/internal/domain/restaurant"
)

// mockRepo implements domain.Repository for these tests.
type mockRepo struct {
	GetFn  func(ctx context.Context) (*domain.Profile, error)
	SaveFn func(ctx context.Context, p *domain.Profile) error
}

func (m *mockRepo) Get(ctx context.Context) (*domain.Profile, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx)
	}
	return nil, domain.ErrNotFound
}

func (m *mockRepo) Save(ctx context.Context, p *domain.Profile) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

func TestForm_FirstSaveCreatesProfile(t *testing.T) {
	var saved *domain.Profile
	repo := &mockRepo{
		SaveFn: func(_ context.Context, p *domain.Profile) error {
			saved = p
			return nil
		},
	}
	uc := NewUsecase(repo, nil)

	f := uc.Form()
	defer f.Close()

	// Missing row is create mode, not an error.
	f.Load(context.Background())
	if _, ok := f.Signals().TryRecv(); ok {
		t.Fatal("no signal expected when the profile does not exist yet")
	}

	f.Set(func(d Draft) Draft {
		d.Name = "Warung Asha"
		d.Currency = "IDR"
		return d
	}, FieldName, FieldCurrency)

	if errs := f.Submit(context.Background()); errs != nil {
		t.Fatalf("errs %v", errs)
	}
	sig, _ := f.Signals().TryRecv()
	if sig.Err || sig.Message != "restaurant profile saved" {
		t.Fatalf("signal %+v", sig)
	}
	if saved.CreatedAt == 0 || saved.UpdatedAt != 0 {
		t.Fatalf("timestamps %d/%d", saved.CreatedAt, saved.UpdatedAt)
	}
}

func TestForm_SecondSavePreservesCreatedAt(t *testing.T) {
	existing := &domain.Profile{ID: 1, Name: "Warung Asha", Currency: "IDR", CreatedAt: 42}
	var saved *domain.Profile
	repo := &mockRepo{
		GetFn: func(context.Context) (*domain.Profile, error) { return existing, nil },
		SaveFn: func(_ context.Context, p *domain.Profile) error {
			saved = p
			return nil
		},
	}
	uc := NewUsecase(repo, nil)

	f := uc.Form()
	defer f.Close()
	f.Load(context.Background())
	if d := f.Draft(); d.Name != "Warung Asha" {
		t.Fatalf("draft %+v", d)
	}

	f.Set(func(d Draft) Draft { d.Name = "Warung Asha Baru"; return d }, FieldName)
	if errs := f.Submit(context.Background()); errs != nil {
		t.Fatalf("errs %v", errs)
	}
	if saved.CreatedAt != 42 || saved.UpdatedAt == 0 {
		t.Fatalf("timestamps %d/%d", saved.CreatedAt, saved.UpdatedAt)
	}
}

func TestForm_OptionalPhoneStillValidated(t *testing.T) {
	uc := NewUsecase(&mockRepo{}, nil)
	f := uc.Form()
	defer f.Close()

	f.Set(func(d Draft) Draft {
		d.Name = "Warung Asha"
		d.Currency = "IDR"
		d.Phone = "123" // set but malformed
		return d
	}, FieldName, FieldCurrency, FieldPhone)

	errs := f.Submit(context.Background())
	if errs[FieldPhone] != "phone must be 10 digits" {
		t.Fatalf("errs %v", errs)
	}

	// Empty phone is fine: the field is optional.
	f.Set(func(d Draft) Draft { d.Phone = ""; return d }, FieldPhone)
	if errs := f.Submit(context.Background()); errs != nil {
		t.Fatalf("errs %v", errs)
	}
}
