package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"
	"watchwise/domain"
	"watchwise/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type CatalogService interface {
	GetGenres(ctx context.Context) ([]domain.Genre, error)
	GetLanguages(ctx context.Context) ([]domain.Language, error)
	GetContent(ctx context.Context, id string) (domain.ContentRecord, error)
	SearchContent(ctx context.Context, filter domain.ContentFilter) ([]domain.ContentRecord, error)
}

type CatalogHandler struct {
	catalogService CatalogService
	timeout        time.Duration
}

func NewCatalogHandler(catalogService CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		timeout:        10 * time.Second,
	}
}

func (h *CatalogHandler) GetGenres(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	genres, err := h.catalogService.GetGenres(ctx)
	if err != nil {
		logger.Error("Failed to find all genres", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to get genres"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(genres))
}

func (h *CatalogHandler) GetLanguages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	languages, err := h.catalogService.GetLanguages(ctx)
	if err != nil {
		logger.Error("Failed to find all languages", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "failed to get languages"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(languages))
}

func (h *CatalogHandler) GetContent(c echo.Context) error {
	contentID, err := domain.ParseContentID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid content id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	content, err := h.catalogService.GetContent(ctx, contentID)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to find content", err)
		}
		return c.JSON(status, ResponseError{Message: errorMessage(err, status)})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(content))
}

// SearchContent handles GET /content?q=&genre=&language=&type=&limit=.
func (h *CatalogHandler) SearchContent(c echo.Context) error {
	filter := domain.ContentFilter{
		Query:      c.QueryParam("q"),
		LanguageID: c.QueryParam("language"),
		Type:       c.QueryParam("type"),
	}

	if raw := c.QueryParam("genre"); raw != "" {
		genreID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || genreID <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid genre id"})
		}
		filter.GenreID = genreID
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid limit"})
		}
		filter.Limit = limit
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	results, err := h.catalogService.SearchContent(ctx, filter)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to search content", err)
		}
		return c.JSON(status, ResponseError{Message: errorMessage(err, status)})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(results))
}
