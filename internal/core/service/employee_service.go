package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/perusahaan-a/employee-api/internal/core/domain"
	"github.com/perusahaan-a/employee-api/internal/core/ports"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)

// EmployeeService implements registration, login, and profile CRUD.
type EmployeeService struct {
	repo     ports.EmployeeRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
	logger   zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, tokens ports.TokenService, throttle ports.LoginThrottle, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, tokens: tokens, throttle: throttle, logger: logger}
}

// Register creates a new employee account. The email is lowercased before it
// reaches the store so the unique index applies case-insensitively.
func (s *EmployeeService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !validName(input.Name) || !validName(input.Position) || !emailPattern.MatchString(email) || len(input.Password) < 8 {
		return nil, domain.ErrInvalidData
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Employee{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Position:     strings.TrimSpace(input.Position),
		PasswordHash: string(hash),
		IsAdmin:      input.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", created.ID).Str("email", created.Email).Msg("employee registered")
	return created, nil
}

// Login authenticates by email and password and issues a bearer token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *EmployeeService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	blocked, err := s.throttle.TooMany(ctx, email)
	if err != nil {
		// Throttle storage failing must not lock everyone out.
		s.logger.Warn().Err(err).Msg("login throttle check failed, allowing attempt")
	} else if blocked {
		return nil, domain.ErrTooManyAttempts
	}

	employee, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.Issue(employee.ID)
	if err != nil {
		return nil, err
	}

	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle reset failed")
	}

	s.logger.Info().Str("employee_id", employee.ID).Msg("employee logged in")
	return &ports.LoginResult{Token: token, ExpiresIn: expiresIn}, nil
}

func (s *EmployeeService) recordFailure(ctx context.Context, email string) {
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("login throttle record failed")
	}
}

func (s *EmployeeService) GetProfile(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile applies the present fields after re-running the field rules.
// A present password is re-hashed; a present email is lowercased.
func (s *EmployeeService) UpdateProfile(ctx context.Context, id string, input ports.UpdateProfileInput) (*domain.Employee, error) {
	update := ports.EmployeeUpdate{IsAdmin: input.IsAdmin}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !validName(name) {
			return nil, domain.ErrInvalidData
		}
		update.Name = &name
	}
	if input.Position != nil {
		position := strings.TrimSpace(*input.Position)
		if !validName(position) {
			return nil, domain.ErrInvalidData
		}
		update.Position = &position
	}
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if !emailPattern.MatchString(email) {
			return nil, domain.ErrInvalidData
		}
		update.Email = &email
	}
	if input.Password != nil {
		if len(*input.Password) < 8 {
			return nil, domain.ErrInvalidData
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("employee_id", id).Msg("profile updated")
	return updated, nil
}

func (s *EmployeeService) DeleteProfile(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("employee_id", id).Msg("profile deleted")
	return nil
}

func validName(s string) bool {
	n := len(strings.TrimSpace(s))
	return n >= 2 && n <= 100
}
