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

type RatingService interface {
	RateContent(ctx context.Context, userID, contentID string, value int, review string) error
}

type RatingHandler struct {
	ratingService RatingService
	validator     *validator.Validate
	timeout       time.Duration
}

func NewRatingHandler(ratingService RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
		validator:     validator.New(),
		timeout:       10 * time.Second,
	}
}

type RateContentRequest struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"max=5000"`
}

func (h *RatingHandler) RateContent(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	contentID, err := domain.ParseContentID(c.Param("content_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid content id"})
	}

	var req RateContentRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind rating request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.ratingService.RateContent(ctx, userID, contentID, req.Rating, req.Review); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to save rating", err)
		}
		return c.JSON(status, ResponseError{Message: errorMessage(err, status)})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("Rating saved"))
}
