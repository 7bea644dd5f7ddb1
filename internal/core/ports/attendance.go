package ports

import (
	"context"
	"encoding/json"
)

// MarkAttendanceInput carries a mark-attendance request bound for the upstream
// attendance service. Token is the caller's bearer token, forwarded as-is.
type MarkAttendanceInput struct {
	EmployeeID string
	Date       string
	Status     string
	Token      string
}

// LeaveRequestInput carries a leave request bound for the upstream service.
type LeaveRequestInput struct {
	EmployeeID string
	StartDate  string
	EndDate    string
	Reason     string
	Token      string
}

// LeaveStatusInput carries an admin decision on a pending leave request.
type LeaveStatusInput struct {
	LeaveID string
	Status  string
	Token   string
}

// ReportInput carries the parameters of an attendance report query.
type ReportInput struct {
	EmployeeID string
	StartDate  string
	EndDate    string
	Token      string
}

// UpstreamResponse is a successful envelope relayed from the attendance service.
// Data is kept raw so the payload passes through untouched.
type UpstreamResponse struct {
	StatusCode int
	Message    string
	Data       json.RawMessage
}

// AttendanceClient is the outbound HTTP port to the attendance service.
type AttendanceClient interface {
	MarkAttendance(ctx context.Context, input MarkAttendanceInput) (*UpstreamResponse, error)
	RequestLeave(ctx context.Context, input LeaveRequestInput) (*UpstreamResponse, error)
	UpdateLeaveStatus(ctx context.Context, input LeaveStatusInput) (*UpstreamResponse, error)
	Report(ctx context.Context, input ReportInput) (*UpstreamResponse, error)
}

// AttendanceService defines the pass-through use-cases over AttendanceClient.
type AttendanceService interface {
	MarkAttendance(ctx context.Context, input MarkAttendanceInput) (*UpstreamResponse, error)
	RequestLeave(ctx context.Context, input LeaveRequestInput) (*UpstreamResponse, error)
	UpdateLeaveStatus(ctx context.Context, input LeaveStatusInput) (*UpstreamResponse, error)
	Report(ctx context.Context, input ReportInput) (*UpstreamResponse, error)
}
