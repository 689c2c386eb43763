package payment

import (
	"context"
	"errors"
	"strconv"
	"time"

	"resto-pos-backend/internal/analytics"
	empDomain "resto-pos-backend/internal/domain/employee"
	domain "resto-pos-backend/internal/domain/payment"
	"resto-pos-backend/internal/form"
	"resto-pos-backend/internal/listops"
	"resto-pos-backend/internal/outbox"
	"resto-pos-backend/internal/transfer"
	"resto-pos-backend/internal/validation"
)

const (
	FieldEmployee = "employee"
	FieldAmount   = "amount"
	FieldType     = "type"
	FieldPaidAt   = "paid_at"
)

type Draft struct {
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Amount       string `json:"amount"`
	Type         string `json:"type"`
	PaidAt       int64  `json:"paid_at"`
	Note         string `json:"note"`
}

type Usecase struct {
	repo      domain.Repository
	employees empDomain.Repository
	store     *transfer.Store
	track     analytics.Tracker
}

func NewUsecase(r domain.Repository, employees empDomain.Repository, store *transfer.Store, track analytics.Tracker) *Usecase {
	if track == nil {
		track = analytics.Noop{}
	}
	return &Usecase{repo: r, employees: employees, store: store, track: track}
}

func (u *Usecase) Form(id uint) *form.Controller[Draft] {
	return form.New(form.Config[Draft]{
		Fields: map[string]form.Validator[Draft]{
			// "no employee selected" is itself a validated field; the
			// reference is also re-resolved so a deleted employee blocks
			// submission.
			FieldEmployee: func(ctx context.Context, d Draft, _ uint) string {
				if msg := validation.Selected(d.EmployeeID, "employee"); msg != "" {
					return msg
				}
				if _, err := u.employees.GetByID(ctx, d.EmployeeID); err != nil {
					return "employee not found"
				}
				return ""
			},
			FieldAmount: func(_ context.Context, d Draft, _ uint) string {
				return validation.Money(d.Amount, "amount")
			},
			FieldType: func(_ context.Context, d Draft, _ uint) string {
				return validation.OneOf(d.Type, "type",
					string(domain.TypeSalary), string(domain.TypeBonus), string(domain.TypeAdvance))
			},
			FieldPaidAt: func(_ context.Context, d Draft, _ uint) string {
				return validation.TimestampMS(d.PaidAt, "payment date")
			},
		},
		Load:           u.loadDraft,
		Persist:        u.persistDraft,
		LoadErrMessage: domain.ErrNotFound.Error(),
	}, id)
}

// ChooseEmployee loads the referenced employee into the draft as a side
// effect of the selection event. A failed load surfaces on the outbox
// and leaves the draft unchanged.
func (u *Usecase) ChooseEmployee(ctx context.Context, f *form.Controller[Draft], employeeID uint) {
	e, err := u.employees.GetByID(ctx, employeeID)
	if err != nil {
		f.Signals().Publish(outbox.Error(empDomain.ErrNotFound.Error()))
		return
	}
	f.Set(func(d Draft) Draft {
		d.EmployeeID = e.ID
		d.EmployeeName = e.Name
		return d
	}, FieldEmployee)
}

func (u *Usecase) loadDraft(ctx context.Context, id uint) (Draft, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	return Draft{
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Amount:       strconv.FormatFloat(p.Amount, 'f', -1, 64),
		Type:         string(p.Type),
		PaidAt:       p.PaidAt,
		Note:         p.Note,
	}, nil
}

func (u *Usecase) persistDraft(ctx context.Context, d Draft, id uint) (string, error) {
	amount, err := strconv.ParseFloat(d.Amount, 64)
	if err != nil {
		return "", errors.New("amount must be a number")
	}
	p := &domain.Payment{
		ID:           id,
		EmployeeID:   d.EmployeeID,
		EmployeeName: d.EmployeeName,
		Amount:       amount,
		Type:         domain.Type(d.Type),
		PaidAt:       d.PaidAt,
		Note:         d.Note,
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
		u.track.Add(ctx, "payment_created", 1)
		return "payment recorded", nil
	}
	u.track.Add(ctx, "payment_updated", 1)
	return "payment updated", nil
}

func (u *Usecase) Settings() *listops.Controller[domain.Payment] {
	return listops.New(listops.Config[domain.Payment]{
		ID:     func(p domain.Payment) uint { return p.ID },
		Search: u.repo.Search,
		Commit: func(ctx context.Context, items []domain.Payment) (int, error) {
			n, err := u.repo.BulkUpsert(ctx, items)
			if err == nil {
				u.track.Add(ctx, "payment_imported", n)
			}
			return n, err
		},
		Label: "payments",
	})
}

func (u *Usecase) Export(ctx context.Context, ctl *listops.Controller[domain.Payment]) (string, int) {
	var name string
	n, ok := ctl.ExportWith(ctx, func(_ context.Context, items []domain.Payment) error {
		f, fname, err := u.store.CreateForWrite("payments")
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
	u.track.Add(ctx, "payment_exported", n)
	return name, n
}

func (u *Usecase) ImportFile(_ context.Context, ctl *listops.Controller[domain.Payment], name string) bool {
	f, err := u.store.OpenForRead(name)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	defer f.Close()
	items, err := transfer.ReadRecords[domain.Payment](f)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	ctl.SetImported(items)
	return true
}

func (u *Usecase) Get(ctx context.Context, id uint) (*domain.Payment, error) {
	return u.repo.GetByID(ctx, id)
}
