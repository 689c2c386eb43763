package http

import (
	"net/http"

	"resto-pos-backend/internal/usecase/market"

	"github.com/labstack/echo/v4"
)

type MarketHandler struct{ uc *market.Usecase }

func NewMarketHandler(uc *market.Usecase) *MarketHandler { return &MarketHandler{uc: uc} }

// --- shopping lists ---

type marketListReq struct {
	Title      string `json:"title" validate:"required"`
	PlannedFor int64  `json:"planned_for" validate:"required"`
}

func (h *MarketHandler) CreateList(c echo.Context) error {
	var req marketListReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submitList(c, 0, req)
}

func (h *MarketHandler) UpdateList(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req marketListReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submitList(c, id, req)
}

func (h *MarketHandler) submitList(c echo.Context, id uint, req marketListReq) error {
	ctx := c.Request().Context()
	f := h.uc.ListForm(id)
	defer f.Close()

	if id != 0 {
		f.Load(ctx)
		if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
			return c.JSON(http.StatusNotFound, map[string]string{"error": sig.Message})
		}
	}
	f.Set(func(d market.ListDraft) market.ListDraft {
		d.Title = req.Title
		d.PlannedFor = req.PlannedFor
		return d
	}, market.FieldTitle, market.FieldPlannedFor)

	if errs := f.Submit(ctx); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fieldErrs(errs)})
	}
	sig, ok := f.Signals().TryRecv()
	return submitResult(c, sig, ok, id == 0)
}

func (h *MarketHandler) GetList(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	l, err := h.uc.GetList(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, l)
}

func (h *MarketHandler) Lists(c echo.Context) error {
	ctl := h.uc.ListSettings()
	defer ctl.Close()
	ctl.SetSearchText(c.QueryParam("search"))
	lists, err := ctl.Refresh(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, lists)
}

// --- shopping items ---

type marketItemReq struct {
	ListID   uint   `json:"list_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
	Unit     string `json:"unit"`
	Price    string `json:"price"`
}

func (h *MarketHandler) CreateItem(c echo.Context) error {
	var req marketItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submitItem(c, 0, req)
}

func (h *MarketHandler) UpdateItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req marketItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submitItem(c, id, req)
}

func (h *MarketHandler) submitItem(c echo.Context, id uint, req marketItemReq) error {
	ctx := c.Request().Context()
	f := h.uc.ItemForm(id)
	defer f.Close()

	if id != 0 {
		f.Load(ctx)
		if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
			return c.JSON(http.StatusNotFound, map[string]string{"error": sig.Message})
		}
	}
	f.Set(func(d market.ItemDraft) market.ItemDraft {
		d.ListID = req.ListID
		d.Name = req.Name
		d.Quantity = req.Quantity
		d.Unit = req.Unit
		d.Price = req.Price
		return d
	}, market.FieldList, market.FieldItemName, market.FieldQuantity, market.FieldPrice)

	if errs := f.Submit(ctx); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fieldErrs(errs)})
	}
	sig, ok := f.Signals().TryRecv()
	return submitResult(c, sig, ok, id == 0)
}

func (h *MarketHandler) GetItem(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	it, err := h.uc.GetItem(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, it)
}

func (h *MarketHandler) Items(c echo.Context) error {
	ctl := h.uc.ItemSettings()
	defer ctl.Close()
	ctl.SetSearchText(c.QueryParam("search"))
	items, err := ctl.Refresh(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

// TogglePurchased flips the bought flag of a single item.
func (h *MarketHandler) TogglePurchased(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	if err := h.uc.TogglePurchased(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "item updated"})
}

func (h *MarketHandler) ExportItems(c echo.Context) error {
	var req selectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	ctx := c.Request().Context()
	ctl := h.uc.ItemSettings()
	defer ctl.Close()
	if _, err := ctl.Refresh(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	toggleAll(ctl, req.IDs)
	name, n := h.uc.ExportItems(ctx, ctl)
	sig, ok := ctl.Signals().TryRecv()
	return bulkResult(c, sig, ok, map[string]any{"file": name, "count": n})
}

func (h *MarketHandler) ImportItems(c echo.Context) error {
	var req importReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	ctx := c.Request().Context()
	ctl := h.uc.ItemSettings()
	defer ctl.Close()
	if !h.uc.ImportItemsFile(ctx, ctl, req.File) {
		sig, ok := ctl.Signals().TryRecv()
		return bulkResult(c, sig, ok, nil)
	}
	toggleAll(ctl, req.IDs)
	n, _ := ctl.CommitImport(ctx)
	sig, ok := ctl.Signals().TryRecv()
	return bulkResult(c, sig, ok, map[string]any{"count": n})
}
