package ports

import (
	"context"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
)

// EmployeeUpdate carries the fields a profile update may change. Nil means
// "leave untouched"; Password is already hashed when it reaches the repository.
type EmployeeUpdate struct {
	Name         *string
	Email        *string
	Position     *string
	PasswordHash *string
	IsAdmin      *bool
}

// EmployeeRepository defines the persistence operations for employee records.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) (*domain.Employee, error)
	FindByEmail(ctx context.Context, email string) (*domain.Employee, error)
	FindByID(ctx context.Context, id string) (*domain.Employee, error)
	Update(ctx context.Context, id string, update EmployeeUpdate) (*domain.Employee, error)
	Delete(ctx context.Context, id string) error
}
