package http

import (
	"net/http"

	"resto-pos-backend/internal/usecase/address"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct{ uc *address.Usecase }

func NewAddressHandler(uc *address.Usecase) *AddressHandler { return &AddressHandler{uc: uc} }

type addressReq struct {
	Label   string `json:"label" validate:"required"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	Pincode string `json:"pincode" validate:"required,len=6,numeric"`
	Phone   string `json:"phone" validate:"required,phone10"`
}

func (h *AddressHandler) Create(c echo.Context) error {
	var req addressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, 0, req)
}

func (h *AddressHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req addressReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, id, req)
}

func (h *AddressHandler) submit(c echo.Context, id uint, req addressReq) error {
	ctx := c.Request().Context()
	f := h.uc.Form(id)
	defer f.Close()

	if id != 0 {
		f.Load(ctx)
		if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
			return c.JSON(http.StatusNotFound, map[string]string{"error": sig.Message})
		}
	}
	f.Set(func(d address.Draft) address.Draft {
		d.Label = req.Label
		d.Street = req.Street
		d.City = req.City
		d.Pincode = req.Pincode
		d.Phone = req.Phone
		return d
	}, address.FieldLabel, address.FieldStreet, address.FieldCity, address.FieldPincode, address.FieldPhone)

	if errs := f.Submit(ctx); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fieldErrs(errs)})
	}
	sig, ok := f.Signals().TryRecv()
	return submitResult(c, sig, ok, id == 0)
}

func (h *AddressHandler) Get(c echo.Context) error {
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

func (h *AddressHandler) List(c echo.Context) error {
	ctl := h.uc.Settings()
	defer ctl.Close()
	ctl.SetSearchText(c.QueryParam("search"))
	items, err := ctl.Refresh(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}
