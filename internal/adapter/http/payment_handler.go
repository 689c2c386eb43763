package http

import (
	"net/http"

	"resto-pos-backend/internal/usecase/payment"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type paymentReq struct {
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Amount     string `json:"amount" validate:"required,money"`
	Type       string `json:"type" validate:"required,paytype"`
	PaidAt     int64  `json:"paid_at" validate:"required"`
	Note       string `json:"note"`
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, 0, req)
}

func (h *PaymentHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, id, req)
}

func (h *PaymentHandler) submit(c echo.Context, id uint, req paymentReq) error {
	ctx := c.Request().Context()
	f := h.uc.Form(id)
	defer f.Close()

	if id != 0 {
		f.Load(ctx)
		if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
			return c.JSON(http.StatusNotFound, map[string]string{"error": sig.Message})
		}
	}
	// The employee reference is a selection event, not a plain field
	// write; a dangling reference fails here before the form is touched.
	h.uc.ChooseEmployee(ctx, f, req.EmployeeID)
	if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": sig.Message})
	}
	f.Set(func(d payment.Draft) payment.Draft {
		d.Amount = req.Amount
		d.Type = req.Type
		d.PaidAt = req.PaidAt
		d.Note = req.Note
		return d
	}, payment.FieldAmount, payment.FieldType, payment.FieldPaidAt)

	if errs := f.Submit(ctx); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fieldErrs(errs)})
	}
	sig, ok := f.Signals().TryRecv()
	return submitResult(c, sig, ok, id == 0)
}

func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PaymentHandler) List(c echo.Context) error {
	ctl := h.uc.Settings()
	defer ctl.Close()
	ctl.SetSearchText(c.QueryParam("search"))
	items, err := ctl.Refresh(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *PaymentHandler) Export(c echo.Context) error {
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

func (h *PaymentHandler) Import(c echo.Context) error {
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
