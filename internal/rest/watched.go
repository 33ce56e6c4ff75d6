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

type WatchHistoryService interface {
	MarkWatched(ctx context.Context, userID, contentID string) error
	UnmarkWatched(ctx context.Context, userID, contentID string) error
	ListWatched(ctx context.Context, userID string) ([]domain.WatchedItem, error)
}

type WatchedHandler struct {
	watchHistoryService WatchHistoryService
	timeout             time.Duration
}

func NewWatchedHandler(watchHistoryService WatchHistoryService) *WatchedHandler {
	return &WatchedHandler{
		watchHistoryService: watchHistoryService,
		timeout:             10 * time.Second,
	}
}

func (h *WatchedHandler) MarkWatched(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	contentID, err := domain.ParseContentID(c.Param("content_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid content id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.watchHistoryService.MarkWatched(ctx, userID, contentID); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to mark content watched", err)
		}
		return c.JSON(status, ResponseError{Message: errorMessage(err, status)})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("Content marked as watched"))
}

func (h *WatchedHandler) UnmarkWatched(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	contentID, err := domain.ParseContentID(c.Param("content_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid content id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.watchHistoryService.UnmarkWatched(ctx, userID, contentID); err != nil {
		logger.Error("Failed to unmark content watched", err)
		status := statusFor(err)
		return c.JSON(status, ResponseError{Message: errorMessage(err, status)})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Content removed from watched list"))
}

func (h *WatchedHandler) ListWatched(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	items, err := h.watchHistoryService.ListWatched(ctx, userID)
	if err != nil {
		logger.Error("Failed to list watched content", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to list watched content"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(items))
}
