package http

import (
	"net/http"

	"resto-pos-backend/internal/usecase/restaurant"

	"github.com/labstack/echo/v4"
)

type RestaurantHandler struct{ uc *restaurant.Usecase }

func NewRestaurantHandler(uc *restaurant.Usecase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

type restaurantReq struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone10"`
	Street   string `json:"street"`
	City     string `json:"city"`
	Currency string `json:"currency" validate:"required"`
}

func (h *RestaurantHandler) Get(c echo.Context) error {
	p, err := h.uc.Profile(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "profile not set"})
	}
	return c.JSON(http.StatusOK, p)
}

// Put writes the singleton profile through the form flow; the first
// write creates it, later writes replace it.
func (h *RestaurantHandler) Put(c echo.Context) error {
	var req restaurantReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	ctx := c.Request().Context()
	f := h.uc.Form()
	defer f.Close()

	f.Load(ctx)
	if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": sig.Message})
	}
	f.Set(func(d restaurant.Draft) restaurant.Draft {
		d.Name = req.Name
		d.Phone = req.Phone
		d.Street = req.Street
		d.City = req.City
		d.Currency = req.Currency
		return d
	}, restaurant.FieldName, restaurant.FieldPhone, restaurant.FieldCurrency)

	if errs := f.Submit(ctx); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fieldErrs(errs)})
	}
	sig, ok := f.Signals().TryRecv()
	return submitResult(c, sig, ok, false)
}
