package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
)

// errorEnvelope is the canonical error shape: {status, message}. It matches
// the success envelope minus the data field.
type errorEnvelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Relays upstream attendance-service errors verbatim.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorEnvelope{Status: code, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, middleware rejections).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Attendance-service failures with a response: status and message pass
	// through untouched.
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return ue.StatusCode, ue.Message
	}

	// Known domain errors → deterministic HTTP codes and messages.
	switch {
	case errors.Is(err, domain.ErrInvalidData):
		return http.StatusBadRequest, "Invalid data"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusBadRequest, "Email already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "Incorrect email or password"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusForbidden, "Invalid token"
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return http.StatusNotFound, "Employee not found"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many login attempts, try again later"
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		log.Error().Err(err).Str("path", c.Path()).Msg("attendance service unreachable")
		return http.StatusInternalServerError, "Internal server error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
