package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/perusahaan-a/employee-api/internal/api/metrics"
	"github.com/perusahaan-a/employee-api/internal/core/domain"
	"github.com/perusahaan-a/employee-api/internal/core/ports"
)

// AttendanceHandler proxies attendance and leave operations to the upstream
// attendance service, relaying its status, message, and data verbatim.
type AttendanceHandler struct {
	service ports.AttendanceService
}

func NewAttendanceHandler(service ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// Mark forwards an attendance mark for the authenticated employee.
//
// @Summary      Mark attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      markAttendanceRequest  true  "Attendance mark"
// @Success      201   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/v1/employee/mark [post]
func (h *AttendanceHandler) Mark(c echo.Context) error {
	principal, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	var req markAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidData
	}

	resp, err := h.forward("mark", func() (*ports.UpstreamResponse, error) {
		return h.service.MarkAttendance(c.Request().Context(), ports.MarkAttendanceInput{
			EmployeeID: principal.ID,
			Date:       req.Date,
			Status:     req.Status,
			Token:      ctxToken(c),
		})
	})
	if err != nil {
		return err
	}
	return relay(c, resp)
}

// RequestLeave forwards a leave request for the authenticated employee.
//
// @Summary      Request leave
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      leaveRequest  true  "Leave request"
// @Success      201   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/v1/employee/leave [post]
func (h *AttendanceHandler) RequestLeave(c echo.Context) error {
	principal, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	var req leaveRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidData
	}

	resp, err := h.forward("leave", func() (*ports.UpstreamResponse, error) {
		return h.service.RequestLeave(c.Request().Context(), ports.LeaveRequestInput{
			EmployeeID: principal.ID,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			Reason:     req.Reason,
			Token:      ctxToken(c),
		})
	})
	if err != nil {
		return err
	}
	return relay(c, resp)
}

// UpdateLeaveStatus forwards an admin decision on a leave request.
//
// @Summary      Approve or reject a leave request
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Leave request id"
// @Param        body  body      leaveStatusRequest  true  "New status"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /api/v1/employee/leave/{id}/status [put]
func (h *AttendanceHandler) UpdateLeaveStatus(c echo.Context) error {
	var req leaveStatusRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidData
	}

	resp, err := h.forward("leave_status", func() (*ports.UpstreamResponse, error) {
		return h.service.UpdateLeaveStatus(c.Request().Context(), ports.LeaveStatusInput{
			LeaveID: c.Param("id"),
			Status:  req.Status,
			Token:   ctxToken(c),
		})
	})
	if err != nil {
		return err
	}
	return relay(c, resp)
}

// Report forwards an attendance report query for the authenticated employee.
//
// @Summary      Generate attendance report
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  false  "Report range start (YYYY-MM-DD)"
// @Param        endDate    query     string  false  "Report range end (YYYY-MM-DD)"
// @Success      200        {object}  envelope
// @Failure      401        {object}  envelope
// @Failure      403        {object}  envelope
// @Failure      500        {object}  envelope
// @Router       /api/v1/employee/report [get]
func (h *AttendanceHandler) Report(c echo.Context) error {
	principal, err := ctxEmployee(c)
	if err != nil {
		return err
	}

	resp, err := h.forward("report", func() (*ports.UpstreamResponse, error) {
		return h.service.Report(c.Request().Context(), ports.ReportInput{
			EmployeeID: principal.ID,
			StartDate:  c.QueryParam("startDate"),
			EndDate:    c.QueryParam("endDate"),
			Token:      ctxToken(c),
		})
	})
	if err != nil {
		return err
	}
	return relay(c, resp)
}

// forward wraps one upstream call with per-operation metrics.
func (h *AttendanceHandler) forward(operation string, call func() (*ports.UpstreamResponse, error)) (*ports.UpstreamResponse, error) {
	start := time.Now()
	resp, err := call()
	metrics.UpstreamRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	if err != nil {
		code := "error"
		var ue *domain.UpstreamError
		if errors.As(err, &ue) {
			code = strconv.Itoa(ue.StatusCode)
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(operation, code).Inc()
		return nil, err
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// relay writes the upstream envelope back to the caller unchanged.
func relay(c echo.Context, resp *ports.UpstreamResponse) error {
	var data any
	if len(resp.Data) > 0 {
		data = resp.Data
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	return respond(c, status, resp.Message, data)
}
