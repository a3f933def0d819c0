package middleware

import (
	"github.com/labstack/echo/v4"

	"hospital/internal/auth"
	"hospital/internal/metrics"
)

// RequireAdmin lets only admin identities through. It must run after Auth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := auth.IdentityFromContext(c.Request().Context())
			if err := auth.RequireAdmin(id); err != nil {
				metrics.PolicyDenialsTotal.WithLabelValues(metrics.RuleAdmin).Inc()
				return err
			}
			return next(c)
		}
	}
}
