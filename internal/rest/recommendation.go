package rest

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"
	"watchwise/domain"
	"watchwise/pkg/logger"
	"watchwise/pkg/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	GetRecommendations(ctx context.Context, rawUserID string) (domain.RecommendationResult, error)
}

type RecommendationHandler struct {
	recommendationService RecommendationService
	validator             *validator.Validate
	timeout               time.Duration
}

// NewRecommendationHandler allows a little more than the generation timeout
// so a regeneration in flight can still answer this request.
func NewRecommendationHandler(recommendationService RecommendationService, generationTimeout time.Duration) *RecommendationHandler {
	if generationTimeout <= 0 {
		generationTimeout = 90 * time.Second
	}
	return &RecommendationHandler{
		recommendationService: recommendationService,
		validator:             validator.New(),
		timeout:               generationTimeout + 5*time.Second,
	}
}

type RecommendRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type recommendationsResponse struct {
	Recommendations []domain.Recommendation `json:"recommendations"`
}

type recommendationErrorResponse struct {
	Error           string                  `json:"error"`
	Recommendations []domain.Recommendation `json:"recommendations,omitempty"`
	Stale           bool                    `json:"stale,omitempty"`
}

// Recommend handles POST /recommend. The body user id must match the token.
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req RecommendRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind recommend request", err)
		return c.JSON(http.StatusBadRequest, recommendationErrorResponse{Error: "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, recommendationErrorResponse{Error: "user_id is required"})
	}

	userID, err := domain.ParseUserID(req.UserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, recommendationErrorResponse{Error: "invalid user_id"})
	}

	if caller, ok := currentUserID(c); ok && caller != userID {
		return c.JSON(http.StatusForbidden, recommendationErrorResponse{Error: "user_id does not match token"})
	}

	return h.respond(c, userID)
}

// GetRecommendations handles GET /recommendations for the token's user.
func (h *RecommendationHandler) GetRecommendations(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, recommendationErrorResponse{Error: "unauthorized"})
	}

	return h.respond(c, userID)
}

func (h *RecommendationHandler) respond(c echo.Context, userID string) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recommendationService.GetRecommendations(ctx, userID)
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		return h.writeError(c, err, result)
	}

	status := "hit"
	if !result.CacheHit {
		status = "generated"
	}
	metrics.RecommendRequests.WithLabelValues(status).Inc()

	recs := result.Recommendations
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	return c.JSON(http.StatusOK, recommendationsResponse{Recommendations: recs})
}

func (h *RecommendationHandler) writeError(c echo.Context, err error, result domain.RecommendationResult) error {
	body := recommendationErrorResponse{}
	if result.Stale {
		body.Recommendations = result.Recommendations
		body.Stale = true
	}

	var rateErr *domain.RateLimitError
	switch {
	case errors.Is(err, domain.ErrInvalidUserID):
		metrics.RecommendRequests.WithLabelValues("invalid").Inc()
		body.Error = "invalid user_id"
		return c.JSON(http.StatusBadRequest, body)

	case errors.Is(err, domain.ErrRateLimited):
		metrics.RecommendRequests.WithLabelValues("rate_limited").Inc()
		retryAfter := time.Minute
		if errors.As(err, &rateErr) && rateErr.RetryAfter > 0 {
			retryAfter = rateErr.RetryAfter
		}
		c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
		body.Error = "recommendation service is busy, please try again in a moment"
		logger.Warn("Recommendations rate limited", "error", err, "retry_after", retryAfter.String())
		return c.JSON(http.StatusTooManyRequests, body)

	case errors.Is(err, domain.ErrMalformedResponse):
		metrics.RecommendRequests.WithLabelValues("malformed").Inc()
		logger.Error("Model returned an unreadable recommendation list", err)

	default:
		metrics.RecommendRequests.WithLabelValues("error").Inc()
		logger.Error("Failed to generate recommendations", err)
	}

	body.Error = "failed to generate recommendations"
	return c.JSON(http.StatusInternalServerError, body)
}
