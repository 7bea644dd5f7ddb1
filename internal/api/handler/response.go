package handler

import (
	"github.com/labstack/echo/v4"
)

// envelope is the uniform response shape: {status, message, data?}. Error
// responses use the same shape via the central HTTP error handler.
type envelope struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, envelope{Status: status, Message: message, Data: data})
}
