package http

import (
	"net/http"
	"sort"
	"strconv"

	"resto-pos-backend/internal/listops"
	"resto-pos-backend/internal/outbox"

	"github.com/labstack/echo/v4"
)

// ---- helpers ----

func parseID(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

func fieldErrs(m map[string]string) []FieldError {
	out := make([]FieldError, 0, len(m))
	for f, msg := range m {
		out = append(out, FieldError{Field: f, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// toggleAll marks the requested ids in the controller's selection set.
func toggleAll[T any](ctl *listops.Controller[T], ids []uint) {
	for _, id := range ids {
		ctl.Toggle(id)
	}
}

// submitResult turns the controller's one-shot signal into the HTTP
// response for a form submission.
func submitResult(c echo.Context, sig outbox.Signal, ok bool, created bool) error {
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no result"})
	}
	if sig.Err {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": sig.Message})
	}
	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	return c.JSON(code, map[string]string{"message": sig.Message})
}

// bulkResult does the same for export/import outcomes.
func bulkResult(c echo.Context, sig outbox.Signal, ok bool, extra map[string]any) error {
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "no result"})
	}
	if sig.Err {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": sig.Message})
	}
	body := map[string]any{"message": sig.Message}
	for k, v := range extra {
		body[k] = v
	}
	return c.JSON(http.StatusOK, body)
}
