package router

import (
	"watchwise/internal/middleware"
	"watchwise/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler) {
	reco := api.Group("", middleware.AuthMiddleware())
	reco.POST("/recommend", handler.Recommend)
	reco.GET("/recommendations", handler.GetRecommendations)
}

func SetWatchedRoutes(api *echo.Group, handler *rest.WatchedHandler) {
	watched := api.Group("/watched", middleware.AuthMiddleware())
	watched.GET("", handler.ListWatched)
	watched.POST("/:content_id", handler.MarkWatched)
	watched.DELETE("/:content_id", handler.UnmarkWatched)
}

func SetRatingRoutes(api *echo.Group, handler *rest.RatingHandler) {
	ratings := api.Group("/ratings", middleware.AuthMiddleware())
	ratings.PUT("/:content_id", handler.RateContent)
}

func SetPreferenceRoutes(api *echo.Group, handler *rest.PreferenceHandler) {
	preferences := api.Group("/preferences", middleware.AuthMiddleware())
	preferences.GET("", handler.GetPreferences)
	preferences.PUT("", handler.UpdatePreferences)
}

// SetCatalogRoutes exposes reference data publicly; content search needs a
// signed-in user like the rest of the discover page.
func SetCatalogRoutes(api *echo.Group, handler *rest.CatalogHandler) {
	api.GET("/genres", handler.GetGenres)
	api.GET("/languages", handler.GetLanguages)

	content := api.Group("/content", middleware.AuthMiddleware())
	content.GET("", handler.SearchContent)
	content.GET("/:id", handler.GetContent)
}

func SetAnalyticsRoutes(api *echo.Group, handler *rest.AnalyticsHandler) {
	analytics := api.Group("/analytics", middleware.AuthMiddleware())
	analytics.GET("", handler.GetUserAnalytics)
}

func SetKeepaliveRoutes(e *echo.Echo, handler *rest.KeepaliveHandler, cronSecret string) {
	e.GET("/api/keepalive", handler.Ping, middleware.CronSecret(cronSecret))
}
