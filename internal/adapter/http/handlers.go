package http

import (
	"context"
	"net/http"
	"time"

	"resto-pos-backend/internal/transfer"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handler struct {
	store *transfer.Store
	db    *gorm.DB
	rdb   *redis.Client
}

func NewHandler(store *transfer.Store, db *gorm.DB, rdb *redis.Client) *Handler {
	return &Handler{store: store, db: db, rdb: rdb}
}

func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if h.db == nil {
		dbStatus = "unconfigured"
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "down"
	}

	redisStatus := "up"
	if h.rdb == nil {
		redisStatus = "unconfigured"
	} else if err := h.rdb.Ping(ctx).Err(); err != nil {
		redisStatus = "down"
	}

	code := http.StatusOK
	status := "ok"
	if dbStatus == "down" || redisStatus == "down" {
		code = http.StatusServiceUnavailable
		status = "degraded"
	}
	return c.JSON(code, map[string]any{
		"status": status,
		"db":     dbStatus,
		"redis":  redisStatus,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// ListExports names the export files available for import.
func (h *Handler) ListExports(c echo.Context) error {
	names, err := h.store.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"files": names})
}
