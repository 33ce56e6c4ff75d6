package rest

import (
	"context"
	"net/http"
	"time"
	"watchwise/domain"
	"watchwise/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type AnalyticsService interface {
	GetUserAnalytics(ctx context.Context, userID string) (domain.UserAnalytics, error)
}

type AnalyticsHandler struct {
	analyticsService AnalyticsService
	timeout          time.Duration
}

func NewAnalyticsHandler(analyticsService AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		timeout:          10 * time.Second,
	}
}

func (h *AnalyticsHandler) GetUserAnalytics(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	analytics, err := h.analyticsService.GetUserAnalytics(ctx, userID)
	if err != nil {
		logger.Error("Failed to build user analytics", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to load analytics"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(analytics))
}
