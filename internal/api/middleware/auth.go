package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
	"github.com/perusahaan-a/employee-api/internal/core/ports"
)

// Context keys set by Auth for downstream middleware and handlers.
const (
	ContextKeyEmployee = "employee"
	ContextKeyToken    = "bearer_token"
)

// Auth extracts the bearer token, verifies it, resolves the principal from the
// store, and attaches both principal and raw token to the request context.
//
// Failure modes are terminal for the request:
//   - missing or malformed Authorization header → 401
//   - bad signature, malformed token, or elapsed expiry → 403
//   - verified id no longer present in the store → 404
func Auth(tokens ports.TokenService, repo ports.EmployeeRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied! No token provided")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access denied! No token provided")
			}

			principalID, err := tokens.Verify(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Invalid token")
			}

			employee, err := repo.FindByID(c.Request().Context(), principalID)
			if err != nil {
				if errors.Is(err, domain.ErrEmployeeNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "Employee not found")
				}
				return err
			}

			c.Set(ContextKeyEmployee, employee)
			c.Set(ContextKeyToken, parts[1])

			return next(c)
		}
	}
}
