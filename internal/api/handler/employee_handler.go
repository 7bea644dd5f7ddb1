package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/perusahaan-a/employee-api/internal/api/metrics"
	"github.com/perusahaan-a/employee-api/internal/core/domain"
	"github.com/perusahaan-a/employee-api/internal/core/ports"
)

// EmployeeHandler handles registration, login, and profile CRUD.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// Register creates a new employee account.
//
// @Summary      Register a new employee
// @Tags         employee
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Employee registration details"
// @Success      201   {object}  envelope{data=employeeResponse}
// @Failure      400   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/v1/employee/register [post]
func (h *EmployeeHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrInvalidData
	}
	if err := c.Validate(req); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return domain.ErrInvalidData
	}

	employee, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Position: req.Position,
		Email:    req.Email,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailExists):
			metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
		case errors.Is(err, domain.ErrInvalidData):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	return respond(c, http.StatusCreated, "Employee registered successfully", toEmployeeResponse(employee))
}

// Login authenticates an employee and returns a bearer token.
//
// @Summary      Login
// @Tags         employee
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope{data=loginResponse}
// @Failure      400   {object}  envelope
// @Failure      429   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/v1/employee/login [post]
func (h *EmployeeHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return domain.ErrInvalidCredentials
	}
	if err := c.Validate(req); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return domain.ErrInvalidCredentials
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		default:
			metrics.LoginsTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return respond(c, http.StatusOK, "Logged in successfully", loginResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	})
}

// GetProfile returns the authenticated employee's own record.
//
// @Summary      Get own profile
// @Tags         employee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=employeeResponse}
// @Failure      401  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/v1/employee/profile [get]
func (h *EmployeeHandler) GetProfile(c echo.Context) error {
	principal, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	// Re-fetch rather than trusting the middleware copy: the record may have
	// been deleted between auth and this call.
	employee, err := h.service.GetProfile(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Employee retrieved successfully", toEmployeeResponse(employee))
}

// UpdateProfile applies a partial update to the authenticated employee's record.
//
// @Summary      Update own profile
// @Tags         employee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to update"
// @Success      200   {object}  envelope{data=employeeResponse}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /api/v1/employee/profile [put]
func (h *EmployeeHandler) UpdateProfile(c echo.Context) error {
	principal, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	// Decode manually so unknown keys fail the request instead of being
	// silently dropped. Only the five whitelisted fields may appear.
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()

	var req updateProfileRequest
	if err := dec.Decode(&req); err != nil {
		return domain.ErrInvalidData
	}
	if err := c.Validate(req); err != nil {
		return domain.ErrInvalidData
	}

	employee, err := h.service.UpdateProfile(c.Request().Context(), principal.ID, ports.UpdateProfileInput{
		Name:     req.Name,
		Email:    req.Email,
		Position: req.Position,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, "Employee updated successfully", toEmployeeResponse(employee))
}

// DeleteProfile removes the authenticated employee's own record.
//
// @Summary      Delete own profile
// @Tags         employee
// @Security     BearerAuth
// @Success      204  "No Content"
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /api/v1/employee/profile [delete]
func (h *EmployeeHandler) DeleteProfile(c echo.Context) error {
	principal, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProfile(c.Request().Context(), principal.ID); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
