package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
	"github.com/perusahaan-a/employee-api/internal/core/ports"
)

func TestAttendanceClient_MarkAttendance_ForwardsTokenAndReshapesBody(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/mark" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"status":201,"message":"Attendance marked successfully","data":{"status":"present"}}`))
	}))
	defer server.Close()

	client := NewAttendanceClient(server.URL, time.Second)
	resp, err := client.MarkAttendance(context.Background(), ports.MarkAttendanceInput{
		EmployeeID: "emp_1",
		Date:       "2024-06-22",
		Status:     "present",
		Token:      "sometoken",
	})
	if err != nil {
		t.Fatalf("MarkAttendance returned error: %v", err)
	}

	if gotAuth != "Bearer sometoken" {
		t.Fatalf("expected bearer token forwarded, got %q", gotAuth)
	}
	if gotBody["employee"] != "emp_1" || gotBody["date"] != "2024-06-22" || gotBody["status"] != "present" {
		t.Fatalf("unexpected reshaped body: %v", gotBody)
	}
	if resp.StatusCode != http.StatusCreated || resp.Message != "Attendance marked successfully" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if string(resp.Data) != `{"status":"present"}` {
		t.Fatalf("data not relayed raw: %s", resp.Data)
	}
}

func TestAttendanceClient_ErrorEnvelopePropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"status":409,"message":"Leave request overlaps an existing one"}`))
	}))
	defer server.Close()

	client := NewAttendanceClient(server.URL, time.Second)
	_, err := client.RequestLeave(context.Background(), ports.LeaveRequestInput{
		EmployeeID: "emp_1",
		StartDate:  "2024-07-01",
		EndDate:    "2024-07-05",
		Reason:     "vacation",
		Token:      "sometoken",
	})

	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.StatusCode != http.StatusConflict || ue.Message != "Leave request overlaps an existing one" {
		t.Fatalf("unexpected upstream error: %+v", ue)
	}
}

func TestAttendanceClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewAttendanceClient(server.URL, time.Second)
	_, err := client.MarkAttendance(context.Background(), ports.MarkAttendanceInput{
		EmployeeID: "emp_1",
		Date:       "2024-06-22",
		Status:     "present",
	})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestAttendanceClient_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	client := NewAttendanceClient(server.URL, time.Second)
	_, err := client.Report(context.Background(), ports.ReportInput{EmployeeID: "emp_1"})
	if !errors.Is(err, domain.ErrUpstreamUnavailable) {
		t.Fatalf("expected ErrUpstreamUnavailable, got %v", err)
	}
}

func TestAttendanceClient_Report_BuildsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("employee") != "emp_1" || q.Get("startDate") != "2024-06-01" || q.Get("endDate") != "2024-06-30" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"Report generated successfully","data":[]}`))
	}))
	defer server.Close()

	client := NewAttendanceClient(server.URL, time.Second)
	resp, err := client.Report(context.Background(), ports.ReportInput{
		EmployeeID: "emp_1",
		StartDate:  "2024-06-01",
		EndDate:    "2024-06-30",
		Token:      "sometoken",
	})
	if err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestAttendanceClient_UpdateLeaveStatus_Path(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/leave/leave_42/status" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"Leave status updated"}`))
	}))
	defer server.Close()

	client := NewAttendanceClient(server.URL, time.Second)
	resp, err := client.UpdateLeaveStatus(context.Background(), ports.LeaveStatusInput{
		LeaveID: "leave_42",
		Status:  "approved",
		Token:   "sometoken",
	})
	if err != nil {
		t.Fatalf("UpdateLeaveStatus returned error: %v", err)
	}
	if resp.Message != "Leave status updated" {
		t.Fatalf("unexpected message: %s", resp.Message)
	}
}
