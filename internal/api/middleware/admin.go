package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
)

// RequireAdmin rejects non-admin principals. It must run after Auth and has no
// authentication logic of its own.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			employee, ok := c.Get(ContextKeyEmployee).(*domain.Employee)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied! No token provided")
			}
			if !employee.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied! Only admin are allowed")
			}
			return next(c)
		}
	}
}
