package employee

import (
	"context"
	"errors"
	"strconv"
	"time"

	"resto-pos-backend/internal/analytics"
	domain "resto-pos-backend/internal/domain/employee"
	"resto-pos-backend/internal/form"
	"resto-pos-backend/internal/listops"
	"resto-pos-backend/internal/outbox"
	"resto-pos-backend/internal/transfer"
	"resto-pos-backend/internal/validation"
)

// Field names of the add/edit form.
const (
	FieldName     = "name"
	FieldPhone    = "phone"
	FieldSalary   = "salary"
	FieldPosition = "position"
)

// Draft mirrors the form: numeric inputs stay text until submission.
type Draft struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Salary   string `json:"salary"`
	Position string `json:"position"`
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

// Form builds the add/edit controller; id 0 means create mode. The
// phone validator is repository-backed (uniqueness), so it participates
// in the latest-wins stream like any other field.
func (u *Usecase) Form(id uint) *form.Controller[Draft] {
	return form.New(form.Config[Draft]{
		Fields: map[string]form.Validator[Draft]{
			FieldName: func(_ context.Context, d Draft, _ uint) string {
				return validation.Required(d.Name, "name")
			},
			FieldPhone: func(ctx context.Context, d Draft, excludeID uint) string {
				if msg := validation.Phone(d.Phone); msg != "" {
					return msg
				}
				n, err := u.repo.CountByPhone(ctx, d.Phone, excludeID)
				if err != nil {
					return "could not verify phone"
				}
				if n > 0 {
					return "phone is already in use"
				}
				return ""
			},
			FieldSalary: func(_ context.Context, d Draft, _ uint) string {
				return validation.Money(d.Salary, "salary")
			},
			FieldPosition: func(_ context.Context, d Draft, _ uint) string {
				return validation.Required(d.Position, "position")
			},
		},
		Load:           u.loadDraft,
		Persist:        u.persistDraft,
		LoadErrMessage: domain.ErrNotFound.Error(),
	}, id)
}

func (u *Usecase) loadDraft(ctx context.Context, id uint) (Draft, error) {
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return Draft{}, err
	}
	return Draft{
		Name:     e.Name,
		Phone:    e.Phone,
		Salary:   strconv.FormatFloat(e.Salary, 'f', -1, 64),
		Position: e.Position,
	}, nil
}

func (u *Usecase) persistDraft(ctx context.Context, d Draft, id uint) (string, error) {
	salary, err := strconv.ParseFloat(d.Salary, 64)
	if err != nil {
		return "", errors.New("salary must be a number")
	}
	e := &domain.Employee{
		ID:       id,
		Name:     d.Name,
		Phone:    d.Phone,
		Salary:   salary,
		Position: d.Position,
	}
	now := time.Now().UTC().UnixMilli()
	if id == 0 {
		e.CreatedAt = now
	} else {
		cur, err := u.repo.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		e.CreatedAt = cur.CreatedAt
		e.UpdatedAt = now
	}
	if err := u.repo.Upsert(ctx, e); err != nil {
		return "", err
	}
	if id == 0 {
		u.track.Add(ctx, "employee_created", 1)
		return "employee created", nil
	}
	u.track.Add(ctx, "employee_updated", 1)
	return "employee updated", nil
}

// Settings builds the searchable multi-select list controller.
func (u *Usecase) Settings() *listops.Controller[domain.Employee] {
	return listops.New(listops.Config[domain.Employee]{
		ID:     func(e domain.Employee) uint { return e.ID },
		Search: u.repo.Search,
		Commit: func(ctx context.Context, items []domain.Employee) (int, error) {
			n, err := u.repo.BulkUpsert(ctx, items)
			if err == nil {
				u.track.Add(ctx, "employee_imported", n)
			}
			return n, err
		},
		Label: "employees",
	})
}

// Export stages the all-or-selected snapshot and writes it to a fresh
// export file. The outcome lands on the controller's outbox; the file
// name is returned for the response payload.
func (u *Usecase) Export(ctx context.Context, ctl *listops.Controller[domain.Employee]) (string, int) {
	var name string
	n, ok := ctl.ExportWith(ctx, func(_ context.Context, items []domain.Employee) error {
		f, fname, err := u.store.CreateForWrite("employees")
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
	u.track.Add(ctx, "employee_exported", n)
	return name, n
}

// ImportFile decodes an export file into the controller's import
// buffer. File and decode failures route through the outbox like every
// other failure.
func (u *Usecase) ImportFile(_ context.Context, ctl *listops.Controller[domain.Employee], name string) bool {
	f, err := u.store.OpenForRead(name)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	defer f.Close()
	items, err := transfer.ReadRecords[domain.Employee](f)
	if err != nil {
		ctl.Signals().Publish(outbox.Error(err.Error()))
		return false
	}
	ctl.SetImported(items)
	return true
}

func (u *Usecase) Get(ctx context.Context, id uint) (*domain.Employee, error) {
	return u.repo.GetByID(ctx, id)
}
