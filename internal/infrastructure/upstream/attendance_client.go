package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
	"github.com/perusahaan-a/employee-api/internal/core/ports"
)

const defaultTimeout = 10 * time.Second

// AttendanceClient talks to the attendance microservice over HTTP. It relays
// the caller's bearer token and the upstream's {status, message, data}
// envelope without interpreting either.
type AttendanceClient struct {
	baseURL string
	http    *http.Client
}

// NewAttendanceClient returns a client for the service at baseURL. A zero
// timeout falls back to defaultTimeout; there is deliberately no retry logic.
func NewAttendanceClient(baseURL string, timeout time.Duration) *AttendanceClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &AttendanceClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// upstreamEnvelope mirrors the attendance service's response shape.
type upstreamEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (c *AttendanceClient) MarkAttendance(ctx context.Context, input ports.MarkAttendanceInput) (*ports.UpstreamResponse, error) {
	body := map[string]string{
		"employee": input.EmployeeID,
		"date":     input.Date,
		"status":   input.Status,
	}
	return c.do(ctx, http.MethodPost, "/mark", nil, body, input.Token)
}

func (c *AttendanceClient) RequestLeave(ctx context.Context, input ports.LeaveRequestInput) (*ports.UpstreamResponse, error) {
	body := map[string]string{
		"employee":  input.EmployeeID,
		"startDate": input.StartDate,
		"endDate":   input.EndDate,
		"reason":    input.Reason,
	}
	return c.do(ctx, http.MethodPost, "/leave", nil, body, input.Token)
}

func (c *AttendanceClient) UpdateLeaveStatus(ctx context.Context, input ports.LeaveStatusInput) (*ports.UpstreamResponse, error) {
	body := map[string]string{"status": input.Status}
	return c.do(ctx, http.MethodPut, "/leave/"+url.PathEscape(input.LeaveID)+"/status", nil, body, input.Token)
}

func (c *AttendanceClient) Report(ctx context.Context, input ports.ReportInput) (*ports.UpstreamResponse, error) {
	query := url.Values{}
	query.Set("employee", input.EmployeeID)
	if input.StartDate != "" {
		query.Set("startDate", input.StartDate)
	}
	if input.EndDate != "" {
		query.Set("endDate", input.EndDate)
	}
	return c.do(ctx, http.MethodGet, "/report", query, nil, input.Token)
}

// do performs one upstream call. A response with a parseable envelope is
// relayed regardless of status code: 2xx as UpstreamResponse, anything else as
// *domain.UpstreamError. Transport failures and unparseable responses become
// ErrUpstreamUnavailable.
func (c *AttendanceClient) do(ctx context.Context, method, path string, query url.Values, body any, token string) (*ports.UpstreamResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode upstream request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrUpstreamUnavailable, err)
	}

	var envelope upstreamEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: malformed response", domain.ErrUpstreamUnavailable)
	}

	if resp.StatusCode >= 400 {
		return nil, &domain.UpstreamError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	return &ports.UpstreamResponse{
		StatusCode: resp.StatusCode,
		Message:    envelope.Message,
		Data:       envelope.Data,
	}, nil
}
