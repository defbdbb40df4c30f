package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-todo-api/pkg/response"
)

// Pinger reports whether the database is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	Ping   Pinger
	Logger logrus.FieldLogger
}

func NewHealthHandler(ping Pinger, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{Ping: ping, Logger: logger}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			if h.Logger != nil {
				h.Logger.WithError(err).Warn("health check: database unreachable")
			}
			response.Error(c, http.StatusServiceUnavailable, "database unavailable", nil)
			return
		}
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}
