package rest

import (
	"context"
	"net/http"
	"time"
	"watchwise/domain"
	"watchwise/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PreferenceService interface {
	GetPreferences(ctx context.Context, userID string) (domain.UserPreference, error)
	UpdatePreferences(ctx context.Context, userID string, genreIDs []int64, languageIDs []string) (domain.UserPreference, error)
}

type PreferenceHandler struct {
	preferenceService PreferenceService
	validator         *validator.Validate
	timeout           time.Duration
}

func NewPreferenceHandler(preferenceService PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		validator:         validator.New(),
		timeout:           10 * time.Second,
	}
}

type UpdatePreferencesRequest struct {
	GenreIDs    []int64  `json:"genre_ids" validate:"max=50,dive,gt=0"`
	LanguageIDs []string `json:"language_ids" validate:"max=50,dive,required"`
}

func (h *PreferenceHandler) GetPreferences(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pref, err := h.preferenceService.GetPreferences(ctx, userID)
	if err != nil {
		logger.Error("Failed to get preferences", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to get preferences"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(pref))
}

func (h *PreferenceHandler) UpdatePreferences(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req UpdatePreferencesRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind preferences request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	pref, err := h.preferenceService.UpdatePreferences(ctx, userID, req.GenreIDs, req.LanguageIDs)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to update preferences", err)
		}
		return c.JSON(status, ResponseError{Message: errorMessage(err, status)})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(pref))
}
