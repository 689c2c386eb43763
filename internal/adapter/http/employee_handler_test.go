package http

import (
	"bytes"
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	domain "resto-pos-backend/internal/domain/employee"
	"resto-pos-backend/internal/testutil/employeemock"
	uc "resto-pos-backend/internal/usecase/employee"

	"github.com/labstack/echo/v4"
)

// -------- helpers --------

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func employeeHandler(t *testing.T, repo *employeemock.Repo) *EmployeeHandler {
	t.Helper()
	store := newTestStore(t)
	return NewEmployeeHandler(uc.NewUsecase(repo, store, nil))
}

// -------- tests --------

func TestCreateEmployee_Success(t *testing.T) {
	e := newEchoWithValidator()

	var saved *domain.Employee
	repo := &employeemock.Repo{
		UpsertFn: func(_ context.Context, emp *domain.Employee) error {
			saved = emp
			return nil
		},
	}
	h := employeeHandler(t, repo)

	reqBody := map[string]any{
		"name":     "Asha",
		"phone":    "0812345678",
		"salary":   "4500000",
		"position": "chef",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/employees", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body["message"] != "employee created" {
		t.Fatalf("body %v", body)
	}
	if saved == nil || saved.Name != "Asha" || saved.Salary != 4500000 {
		t.Fatalf("saved %+v", saved)
	}
}

func TestCreateEmployee_RequestValidationFails(t *testing.T) {
	e := newEchoWithValidator()
	h := employeeHandler(t, &employeemock.Repo{
		UpsertFn: func(context.Context, *domain.Employee) error {
			t.Fatal("persist must not run")
			return nil
		},
	})

	reqBody := map[string]any{
		"name":     "Asha",
		"phone":    "123", // not 10 digits
		"salary":   "4500000",
		"position": "chef",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/employees", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(body.Details) == 0 || body.Details[0].Field != "phone" {
		t.Fatalf("details %+v", body.Details)
	}
}

func TestCreateEmployee_DuplicatePhoneBlockedBySubmit(t *testing.T) {
	e := newEchoWithValidator()
	h := employeeHandler(t, &employeemock.Repo{
		CountByPhoneFn: func(context.Context, string, uint) (int64, error) {
			return 1, nil
		},
	})

	reqBody := map[string]any{
		"name":     "Asha",
		"phone":    "0812345678",
		"salary":   "4500000",
		"position": "chef",
	}
	req := httptest.NewRequest(stdhttp.MethodPost, "/employees", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
	var body ErrorResponse
	json.Unmarshal(rec.Body.Bytes(), &body)
	found := false
	for _, d := range body.Details {
		if d.Field == "phone" && d.Message == "phone is already in use" {
			found = true
		}
	}
	if !found {
		t.Fatalf("details %+v", body.Details)
	}
}

func TestUpdateEmployee_MissingRecord(t *testing.T) {
	e := newEchoWithValidator()
	h := employeeHandler(t, &employeemock.Repo{}) // GetByID defaults to not found

	reqBody := map[string]any{
		"name":     "Asha",
		"phone":    "0812345678",
		"salary":   "4500000",
		"position": "chef",
	}
	req := httptest.NewRequest(stdhttp.MethodPut, "/employees/99", mustJSON(reqBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := h.Update(c); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404; body=%s", rec.Code, rec.Body.String())
	}
}

func TestListEmployees_PassesSearchText(t *testing.T) {
	e := newEchoWithValidator()
	var gotText string
	h := employeeHandler(t, &employeemock.Repo{
		SearchFn: func(_ context.Context, text string) ([]domain.Employee, error) {
			gotText = text
			return []domain.Employee{{ID: 1, Name: "Asha"}}, nil
		},
	})

	req := httptest.NewRequest(stdhttp.MethodGet, "/employees?search=asha", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotText != "asha" {
		t.Fatalf("search text %q", gotText)
	}
	var items []domain.Employee
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Asha" {
		t.Fatalf("items %+v", items)
	}
}

func TestExportEmployees_SelectedSubset(t *testing.T) {
	e := newEchoWithValidator()
	rows := []domain.Employee{
		{ID: 1, Name: "Asha", Phone: "0812345678"},
		{ID: 2, Name: "Budi", Phone: "0812345679"},
	}
	h := employeeHandler(t, &employeemock.Repo{
		SearchFn: func(context.Context, string) ([]domain.Employee, error) {
			return rows, nil
		},
	})

	req := httptest.NewRequest(stdhttp.MethodPost, "/employees/export", mustJSON(map[string]any{"ids": []uint{2}}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Export(c); err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d; body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Message string `json:"message"`
		File    string `json:"file"`
		Count   int    `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body.Count != 1 || body.File == "" || body.Message != "exported 1 employees" {
		t.Fatalf("body %+v", body)
	}
}

func TestImportEmployees_MissingFile(t *testing.T) {
	e := newEchoWithValidator()
	h := employeeHandler(t, &employeemock.Repo{})

	req := httptest.NewRequest(stdhttp.MethodPost, "/employees/import", mustJSON(map[string]any{"file": "gone.json"}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Import(c); err != nil {
		t.Fatalf("Import error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body=%s", rec.Code, rec.Body.String())
	}
}
