package middleware

import (
	"crypto/subtle"
	"net/http"

	jsonres "watchwise/pkg/response"

	"github.com/labstack/echo/v4"
)

// CronSecret guards scheduler-only endpoints with a shared bearer secret.
// With no secret configured every request is refused.
func CronSecret(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if secret == "" || !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Unauthorized", nil,
				))
			}

			return next(c)
		}
	}
}
