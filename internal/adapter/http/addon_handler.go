package http

import (
	"net/http"

	"resto-pos-backend/internal/usecase/addon"

	"github.com/labstack/echo/v4"
)

type AddonHandler struct{ uc *addon.Usecase }

func NewAddonHandler(uc *addon.Usecase) *AddonHandler { return &AddonHandler{uc: uc} }

type addonReq struct {
	Name       string `json:"name" validate:"required"`
	Price      string `json:"price" validate:"required,money"`
	CategoryID uint   `json:"category_id" validate:"required"`
}

func (h *AddonHandler) Create(c echo.Context) error {
	var req addonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, 0, req)
}

func (h *AddonHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var req addonReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	return h.submit(c, id, req)
}

func (h *AddonHandler) submit(c echo.Context, id uint, req addonReq) error {
	ctx := c.Request().Context()
	f := h.uc.Form(id)
	defer f.Close()

	if id != 0 {
		f.Load(ctx)
		if sig, ok := f.Signals().TryRecv(); ok && sig.Err {
			return c.JSON(http.StatusNotFound, map[string]string{"error": sig.Message})
		}
	}
	f.Set(func(d addon.Draft) addon.Draft {
		d.Name = req.Name
		d.Price = req.Price
		d.CategoryID = req.CategoryID
		return d
	}, addon.FieldName, addon.FieldPrice, addon.FieldCategory)

	if errs := f.Submit(ctx); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: fieldErrs(errs)})
	}
	sig, ok := f.Signals().TryRecv()
	return submitResult(c, sig, ok, id == 0)
}

func (h *AddonHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	it, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, it)
}

func (h *AddonHandler) List(c echo.Context) error {
	ctl := h.uc.Settings()
	defer ctl.Close()
	ctl.SetSearchText(c.QueryParam("search"))
	items, err := ctl.Refresh(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *AddonHandler) Export(c echo.Context) error {
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

func (h *AddonHandler) Import(c echo.Context) error {
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
