package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/perusahaan-a/employee-api/internal/api"
	"github.com/perusahaan-a/employee-api/internal/api/handler"
	"github.com/perusahaan-a/employee-api/internal/api/middleware"
	"github.com/perusahaan-a/employee-api/internal/core/domain"
	"github.com/perusahaan-a/employee-api/internal/core/ports"
)

type stubEmployeeService struct {
	registerFn func(ctx context.Context, input ports.RegisterInput) (*domain.Employee, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	getFn      func(ctx context.Context, id string) (*domain.Employee, error)
	updateFn   func(ctx context.Context, id string, input ports.UpdateProfileInput) (*domain.Employee, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *stubEmployeeService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Employee, error) {
	return s.registerFn(ctx, input)
}

func (s *stubEmployeeService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubEmployeeService) GetProfile(ctx context.Context, id string) (*domain.Employee, error) {
	return s.getFn(ctx, id)
}

func (s *stubEmployeeService) UpdateProfile(ctx context.Context, id string, input ports.UpdateProfileInput) (*domain.Employee, error) {
	return s.updateFn(ctx, id, input)
}

func (s *stubEmployeeService) DeleteProfile(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func doJSON(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestEmployeeHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Employee, error) {
			if input.Email != "jane@x.com" || input.Name != "Jane Doe" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Employee{
				ID:           "emp_1",
				Name:         input.Name,
				Email:        input.Email,
				Position:     input.Position,
				PasswordHash: "$2a$10$should-never-appear",
				CreatedAt:    time.Now().UTC(),
				UpdatedAt:    time.Now().UTC(),
			}, nil
		},
	}
	h := handler.NewEmployeeHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/api/v1/employee/register",
		`{"name":"Jane Doe","position":"Engineer","email":"jane@x.com","password":"longenough1"}`)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Employee registered successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", resp["data"])
	}
	if data["email"] != "jane@x.com" {
		t.Fatalf("unexpected email: %v", data["email"])
	}
	if _, present := data["password"]; present {
		t.Fatalf("password leaked into response: %v", data)
	}
	if _, present := data["passwordHash"]; present {
		t.Fatalf("password hash leaked into response: %v", data)
	}
}

func TestEmployeeHandler_Register_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Employee, error) {
			return nil, domain.ErrEmailExists
		},
	}
	h := handler.NewEmployeeHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/api/v1/employee/register",
		`{"name":"Jane Doe","position":"Engineer","email":"jane@x.com","password":"longenough1"}`)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Email already exists" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestEmployeeHandler_Register_InvalidData(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Employee, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := handler.NewEmployeeHandler(stub)

	// Password too short fails the schema before the service is reached.
	c, rec := doJSON(e, http.MethodPost, "/api/v1/employee/register",
		`{"name":"Jane Doe","position":"Engineer","email":"jane@x.com","password":"short"}`)
	if err := h.Register(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Invalid data" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestEmployeeHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "jane@x.com" || password != "longenough1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.LoginResult{Token: "token123", ExpiresIn: 86400}, nil
		},
	}
	h := handler.NewEmployeeHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/api/v1/employee/login",
		`{"email":"jane@x.com","password":"longenough1"}`)
	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Logged in successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
	data := resp["data"].(map[string]any)
	if data["token"] != "token123" || data["expiresIn"] != float64(86400) {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestEmployeeHandler_Login_WrongPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		loginFn: func(ctx context.Context, email, password string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := handler.NewEmployeeHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/api/v1/employee/login",
		`{"email":"jane@x.com","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Incorrect email or password" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestEmployeeHandler_GetProfile_NotFoundAfterDelete(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		getFn: func(ctx context.Context, id string) (*domain.Employee, error) {
			return nil, domain.ErrEmployeeNotFound
		},
	}
	h := handler.NewEmployeeHandler(stub)

	c, rec := doJSON(e, http.MethodGet, "/api/v1/employee/profile", "")
	c.Set(middleware.ContextKeyEmployee, &domain.Employee{ID: "emp_1"})
	if err := h.GetProfile(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEmployeeHandler_UpdateProfile_RejectsUnknownKeys(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateProfileInput) (*domain.Employee, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := handler.NewEmployeeHandler(stub)

	// All whitelisted keys valid, plus one stray key.
	c, rec := doJSON(e, http.MethodPut, "/api/v1/employee/profile",
		`{"name":"Jane Doe","email":"jane@x.com","position":"Engineer","password":"longenough1","isAdmin":false,"salary":90000}`)
	c.Set(middleware.ContextKeyEmployee, &domain.Employee{ID: "emp_1"})
	if err := h.UpdateProfile(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp["message"] != "Invalid data" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestEmployeeHandler_UpdateProfile_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		updateFn: func(ctx context.Context, id string, input ports.UpdateProfileInput) (*domain.Employee, error) {
			if id != "emp_1" {
				t.Fatalf("unexpected id: %s", id)
			}
			if input.Position == nil || *input.Position != "Staff Engineer" {
				t.Fatalf("expected position update, got %+v", input)
			}
			if input.Name != nil || input.Email != nil || input.Password != nil {
				t.Fatalf("absent fields should stay nil: %+v", input)
			}
			return &domain.Employee{ID: id, Name: "Jane Doe", Email: "jane@x.com", Position: "Staff Engineer"}, nil
		},
	}
	h := handler.NewEmployeeHandler(stub)

	c, rec := doJSON(e, http.MethodPut, "/api/v1/employee/profile", `{"position":"Staff Engineer"}`)
	c.Set(middleware.ContextKeyEmployee, &domain.Employee{ID: "emp_1"})
	if err := h.UpdateProfile(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	if data["position"] != "Staff Engineer" {
		t.Fatalf("unexpected data: %v", data)
	}
}

func TestEmployeeHandler_DeleteProfile_NoContent(t *testing.T) {
	e := newTestEcho()
	stub := &stubEmployeeService{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	h := handler.NewEmployeeHandler(stub)

	c, rec := doJSON(e, http.MethodDelete, "/api/v1/employee/profile", "")
	c.Set(middleware.ContextKeyEmployee, &domain.Employee{ID: "emp_1"})
	if err := h.DeleteProfile(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %s", rec.Body.String())
	}
}
