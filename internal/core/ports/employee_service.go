package ports

import (
	"context"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
)

// RegisterInput carries all data needed to create a new employee account.
type RegisterInput struct {
	Name     string
	Position string
	Email    string
	Password string
	IsAdmin  bool
}

// UpdateProfileInput carries the optional fields a profile update may set.
// Only these five fields are ever accepted from a caller.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Position *string
	Password *string
	IsAdmin  *bool
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	ExpiresIn int64 // seconds until the token expires
}

// EmployeeService defines the use-case operations on employee accounts.
type EmployeeService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Employee, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	GetProfile(ctx context.Context, id string) (*domain.Employee, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.Employee, error)
	DeleteProfile(ctx context.Context, id string) error
}

// TokenService issues and verifies signed bearer tokens carrying a principal id.
type TokenService interface {
	Issue(principalID string) (token string, expiresIn int64, err error)
	Verify(token string) (principalID string, err error)
}

// LoginThrottle limits repeated failed login attempts per email address.
type LoginThrottle interface {
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
