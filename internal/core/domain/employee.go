package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrEmailExists = errors.New("email already exists")
var ErrInvalidData = errors.New("invalid data")
var ErrInvalidCredentials = errors.New("incorrect email or password")
var ErrEmployeeNotFound = errors.New("employee not found")
var ErrInvalidToken = errors.New("invalid token")
var ErrTooManyAttempts = errors.New("too many login attempts, try again later")
var ErrUpstreamUnavailable = errors.New("attendance service unavailable")

// Employee models a registered account. PasswordHash never leaves the process:
// it is excluded from JSON and only compared via bcrypt.
type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Position     string    `json:"position"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UpstreamError carries a failure reported by the attendance service. Status
// and message are relayed to the caller verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error %d: %s", e.StatusCode, e.Message)
}
