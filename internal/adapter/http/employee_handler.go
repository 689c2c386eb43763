package http

import (
	"net/http"

	"resto-pos-backend/internal/usecase/employee"

	"github.com/labstack/echo/v4"
)

type EmployeeHandler struct{ uc *employee.Usecase }

func NewEmployeeHandler(uc *employee.Usecase) *EmployeeHandler { return &EmployeeHandler{uc: uc} }

type employeeReq struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone10"`
	Salary   string `json:"salary" validate:"required,money"`
	Position string `json:"position" validate:"required"`
}

func (h *EmployeeHandler) Create(c echo.Context) error {
	var req employeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, 0, req)
}

func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req employeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, id, req)
}

// submit drives the form controller the way a screen would: load in
// edit mode, dispatch the field changes, submit, observe the signal.
func (h *EmployeeHandler) submit(c echo.Context, id uint, req employeeReq) error {
	ctx := c.Request().Context()
	f := h.uc.Form(id)
	defer f.Close()

	if id != 0 {
		f.Load(ctx)
		if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
			return c.JSON(http.StatusNotFound, map[string]string{"error": sig.Message})
		}
	}
	f.Set(func(d employee.Draft) employee.Draft {
		d.Name = req.Name
		d.Phone = req.Phone
		d.Salary = req.Salary
		d.Position = req.Position
		return d
	}, employee.FieldName, employee.FieldPhone, employee.FieldSalary, employee.FieldPosition)

	if errs := f.Submit(ctx); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fieldErrs(errs)})
	}
	sig, ok := f.Signals().TryRecv()
	return submitResult(c, sig, ok, id == 0)
}

func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	e, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) List(c echo.Context) error {
	ctl := h.uc.Settings()
	defer ctl.Close()
	ctl.SetSearchText(c.QueryParam("search"))
	items, err := ctl.Refresh(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

type selectionReq struct {
	IDs []uint `json:"ids"`
}

func (h *EmployeeHandler) Export(c echo.Context) error {
	var req selectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	ctl := h.uc.Settings()
	defer ctl.Close()
	if _, err := ctl.Refresh(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	toggleAll(ctl, req.IDs)
	name, n := h.uc.Export(ctx, ctl)
	sig, ok := ctl.Signals().TryRecv()
	return bulkResult(c, sig, ok, map[string]any{"file": name, "count": n})
}

type importReq struct {
	File string `json:"file" validate:"required"`
	IDs  []uint `json:"ids"`
}

func (h *EmployeeHandler) Import(c echo.Context) error {
	var req importReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	ctx := c.Request().Context()
	ctl := h.uc.Settings()
	defer ctl.Close()
	if !h.uc.ImportFile(ctx, ctl, req.File) {
		sig, ok := ctl.Signals().TryRecv()
		return bulkResult(c, sig, ok, nil)
	}
	toggleAll(ctl, req.IDs)
	n, _ := ctl.CommitImport(ctx)
	sig, ok := ctl.Signals().TryRecv()
	return bulkResult(c, sig, ok, map[string]any{"count": n})
}
