package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/perusahaan-a/employee-api/internal/core/ports"
)

// attendanceService forwards attendance operations to the upstream client.
// It performs no local validation of dates or status values; that logic lives
// entirely upstream, and failures are never retried here.
type attendanceService struct {
	client ports.AttendanceClient
	log    zerolog.Logger
}

// NewAttendanceService returns an AttendanceService implementation.
func NewAttendanceService(client ports.AttendanceClient, log zerolog.Logger) ports.AttendanceService {
	return &attendanceService{client: client, log: log}
}

func (s *attendanceService) MarkAttendance(ctx context.Context, input ports.MarkAttendanceInput) (*ports.UpstreamResponse, error) {
	resp, err := s.client.MarkAttendance(ctx, input)
	if err != nil {
		s.log.Error().Err(err).Str("employee_id", input.EmployeeID).Msg("mark attendance failed")
		return nil, err
	}
	return resp, nil
}

func (s *attendanceService) RequestLeave(ctx context.Context, input ports.LeaveRequestInput) (*ports.UpstreamResponse, error) {
	resp, err := s.client.RequestLeave(ctx, input)
	if err != nil {
		s.log.Error().Err(err).Str("employee_id", input.EmployeeID).Msg("leave request failed")
		return nil, err
	}
	return resp, nil
}

func (s *attendanceService) UpdateLeaveStatus(ctx context.Context, input ports.LeaveStatusInput) (*ports.UpstreamResponse, error) {
	resp, err := s.client.UpdateLeaveStatus(ctx, input)
	if err != nil {
		s.log.Error().Err(err).Str("leave_id", input.LeaveID).Msg("leave status update failed")
		return nil, err
	}
	return resp, nil
}

func (s *attendanceService) Report(ctx context.Context, input ports.ReportInput) (*ports.UpstreamResponse, error) {
	resp, err := s.client.Report(ctx, input)
	if err != nil {
		s.log.Error().Err(err).Str("employee_id", input.EmployeeID).Msg("report generation failed")
		return nil, err
	}
	return resp, nil
}
