package absence

import (
	"context"
	"time"

	"resto-pos-backend/internal/analytics"
	domain "resto-pos-backend/internal/domain/absence"
	empDomain "resto-pos-backend/internal/domain/employee"
	"resto-pos-backend/internal/form"
	"resto-pos-backend/internal/listops"
	"resto-pos-backend/internal/outbox"
	"resto-pos-backend/internal/validation"
)

const (
	FieldEmployee = "employee"
	FieldDate     = "date"
	FieldReason   = "reason"
)

type Draft struct {
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         int64  `json:"date"`
	Reason       string `json:"reason"`
}

type Usecase struct {
	repo      domain.Repository
	employees empDomain.Repository
	track     analytics.Tracker
}

func NewUsecase(r domain.Repository, employees empDomain.Repository, track analytics.Tracker) *Usecase {
	if track == nil {
		track = analytics.Noop{}
	}
	return &Usecase{repo: r, employees: employees, track: track}
}

func (u *Usecase) Form(id uint) *form.Controller[Draft] {
	return form.New(form.Config[Draft]{
		Fields: map[string]form.Validator[Draft]{
			FieldEmployee: func(ctx context.Context, d Draft, _ uint) string {
				if msg := validation.Selected(d.EmployeeID, "employee"); msg != "" {
					return msg
				}
				if _, err := u.employees.GetByID(ctx, d.EmployeeID); err != nil {
					return "employee not found"
				}
				return ""
			},
			FieldDate: func(_ context.Context, d Draft, _ uint) string {
				return validation.TimestampMS(d.Date, "date")
			},
			FieldReason: func(_ context.Context, d Draft, _ uint) string {
				return validation.Required(d.Reason, "reason")
			},
		},
		Load:           u.loadDraft,
		Persist:        u.persistDraft,
		LoadErrMessage: domain.ErrNotFound.Error(),
	}, id)
}

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
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	return Draft{EmployeeID: a.EmployeeID, EmployeeName: a.EmployeeName, Date: a.Date, Reason: a.Reason}, nil
}

func (u *Usecase) persistDraft(ctx context.Context, d Draft, id uint) (string, error) {
	a := &domain.Absence{ID: id, EmployeeID: d.EmployeeID, EmployeeName: d.EmployeeName, Date: d.Date, Reason: d.Reason}
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
		u.track.Add(ctx, "absence_created", 1)
		return "absence recorded", nil
	}
	u.track.Add(ctx, "absence_updated", 1)
	return "absence updated", nil
}

func (u *Usecase) Settings() *listops.Controller[domain.Absence] {
	return listops.New(listops.Config[domain.Absence]{
		ID:     func(a domain.Absence) uint { return a.ID },
		Search: u.repo.Search,
		Commit: func(ctx context.Context, items []domain.Absence) (int, error) {
			return u.repo.BulkUpsert(ctx, items)
		},
		Label: "absences",
	})
}

func (u *Usecase) Get(ctx context.Context, id uint) (*domain.Absence, error) {
	return u.repo.GetByID(ctx, id)
}
