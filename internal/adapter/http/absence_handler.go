package http

import (
	"net/http"

	"resto-pos-backend/internal/usecase/absence"

	"github.com/labstack/echo/v4"
)

type AbsenceHandler struct{ uc *absence.Usecase }

func NewAbsenceHandler(uc *absence.Usecase) *AbsenceHandler { return &AbsenceHandler{uc: uc} }

type absenceReq struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Date       int64  `json:"date" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

func (h *AbsenceHandler) Create(c echo.Context) error {
	var req absenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, 0, req)
}

func (h *AbsenceHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req absenceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, id, req)
}

func (h *AbsenceHandler) submit(c echo.Context, id uint, req absenceReq) error {
	ctx := c.Request().Context()
	f := h.uc.Form(id)
	defer f.Close()

	if id != 0 {
		f.Load(ctx)
		if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
			return c.JSON(http.StatusNotFound, map[string]string{"error": sig.Message})
		}
	}
	h.uc.ChooseEmployee(ctx, f, req.EmployeeID)
	if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": sig.Message})
	}
	f.Set(func(d absence.Draft) absence.Draft {
		d.Date = req.Date
		d.Reason = req.Reason
		return d
	}, absence.FieldDate, absence.FieldReason)

	if errs := f.Submit(ctx); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fieldErrs(errs)})
	}
	sig, ok := f.Signals().TryRecv()
	return submitResult(c, sig, ok, id == 0)
}

func (h *AbsenceHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	a, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, a)
}

func (h *AbsenceHandler) List(c echo.Context) error {
	ctl := h.uc.Settings()
	defer ctl.Close()
	ctl.SetSearchText(c.QueryParam("search"))
	items, err := ctl.Refresh(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}
