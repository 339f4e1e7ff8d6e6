package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// @Summary Health check
// @Description Postgres is required; Redis is reported but only degrades the service
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{"status": "ok", "database": "ok", "cache": "ok"}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		body["status"] = "unavailable"
		body["database"] = "down"
		status = http.StatusServiceUnavailable
	}
	if err := h.cache.Ping(ctx); err != nil {
		body["cache"] = "down"
		if status == http.StatusOK {
			body["status"] = "degraded"
		}
	}
	c.JSON(status, body)
}
