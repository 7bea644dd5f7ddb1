package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/perusahaan-a/employee-api/internal/api/middleware"
	"github.com/perusahaan-a/employee-api/internal/core/domain"
)

// ctxEmployee extracts the principal injected by the Auth middleware. Its
// presence proves the middleware ran; a protected route reached without it is
// a wiring bug and is rejected rather than served anonymously.
func ctxEmployee(c echo.Context) (*domain.Employee, error) {
	employee, ok := c.Get(middleware.ContextKeyEmployee).(*domain.Employee)
	if !ok || employee == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Access denied! No token provided")
	}
	return employee, nil
}

// ctxToken returns the raw bearer token for forwarding to the upstream service.
func ctxToken(c echo.Context) string {
	token, _ := c.Get(middleware.ContextKeyToken).(string)
	return token
}
