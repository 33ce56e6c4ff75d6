package rest

import (
	"context"
	"net/http"
	"time"
	"watchwise/pkg/logger"

	"github.com/labstack/echo/v4"
)

type Heartbeat interface {
	Touch(ctx context.Context) (time.Time, error)
}

// KeepaliveHandler lets an external scheduler keep the database warm.
type KeepaliveHandler struct {
	heartbeat Heartbeat
	timeout   time.Duration
}

func NewKeepaliveHandler(heartbeat Heartbeat) *KeepaliveHandler {
	return &KeepaliveHandler{
		heartbeat: heartbeat,
		timeout:   10 * time.Second,
	}
}

func (h *KeepaliveHandler) Ping(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	at, err := h.heartbeat.Touch(ctx)
	if err != nil {
		logger.Error("Keepalive ping failed", err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"ok":    false,
			"error": "database unreachable",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ok":        true,
		"last_ping": at,
	})
}
