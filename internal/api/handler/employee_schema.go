package handler

import (
	"time"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
)

// --- Request / Response types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Position string `json:"position" validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	IsAdmin  bool   `json:"isAdmin"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

// updateProfileRequest carries the only fields a profile update may set, each
// independently present-or-absent. The handler decodes it with unknown fields
// disallowed, so a payload with any other key is rejected outright.
type updateProfileRequest struct {
	Name     *string `json:"name"     validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Position *string `json:"position" validate:"omitempty,min=2,max=100"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// employeeResponse is the public view of an employee record. There is no
// password field here on purpose.
type employeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toEmployeeResponse(e *domain.Employee) employeeResponse {
	return employeeResponse{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Position:  e.Position,
		IsAdmin:   e.IsAdmin,
		CreatedAt: e.CreatedAt.UTC(),
		UpdatedAt: e.UpdatedAt.UTC(),
	}
}

// --- Attendance proxy types ---
// No validate tags: date and status rules are enforced by the upstream
// attendance service, not here.

type markAttendanceRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type leaveRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

type leaveStatusRequest struct {
	Status string `json:"status"`
}
