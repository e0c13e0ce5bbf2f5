package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type employeeRepository interface {
	FindByUserID(ctx context.Context, userID int64) (*models.Employee, error)
	ProfileByUserID(ctx context.Context, userID int64) (*models.EmployeeProfile, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.EmployeeSummary, error)
	UpdateProfile(ctx context.Context, userID int64, req *models.UpdateEmployeeProfileRequest) error
	UpdateSalary(ctx context.Context, employeeID int64, salary float64) error
}

type employeeUserRepository interface {
	UpdateStatus(ctx context.Context, id int64, status models.UserStatus) error
}

// EmployeeService manages staff profiles, salaries and account status.
type EmployeeService struct {
	repo      employeeRepository
	users     employeeUserRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEmployeeService constructs the service.
func NewEmployeeService(repo employeeRepository, users employeeUserRepository, validate *validator.Validate, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EmployeeService{repo: repo, users: users, validator: validate, logger: logger}
}

// ByUserID returns the employee row linked to a user account.
func (s *EmployeeService) ByUserID(ctx context.Context, userID int64) (*models.Employee, error) {
	employee, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "employee not found")
	}
	return employee, nil
}

// Profile returns the caller's profile joined with their account.
func (s *EmployeeService) Profile(ctx context.Context, userID int64) (*models.EmployeeProfile, error) {
	profile, err := s.repo.ProfileByUserID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "employee not found")
	}
	return profile, nil
}

// ListByRole returns all staff of one role.
func (s *EmployeeService) ListByRole(ctx context.Context, role models.UserRole) ([]models.EmployeeSummary, error) {
	staff, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list staff")
	}
	return staff, nil
}

// UpdateProfile applies the caller's self-service profile changes.
func (s *EmployeeService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateEmployeeProfileRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	if err := s.repo.UpdateProfile(ctx, userID, &req); err != nil {
		return notFoundOr(err, "employee not found")
	}
	s.logger.Info("employee profile updated", zap.Int64("user_id", userID))
	return nil
}

// UpdateSalary adjusts one employee's salary.
func (s *EmployeeService) UpdateSalary(ctx context.Context, req models.UpdateSalaryRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid salary payload")
	}
	if err := s.repo.UpdateSalary(ctx, req.EmployeeID, req.Salary); err != nil {
		return notFoundOr(err, "employee not found")
	}
	s.logger.Info("salary updated", zap.Int64("employee_id", req.EmployeeID))
	return nil
}

// ChangeStatus activates or deactivates a staff account. Deactivated
// accounts cannot sign in but keep their history.
func (s *EmployeeService) ChangeStatus(ctx context.Context, req models.ChangeEmployeeStatusRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if err := s.users.UpdateStatus(ctx, req.UserID, req.Status); err != nil {
		return notFoundOr(err, "user not found")
	}
	s.logger.Info("staff status changed", zap.Int64("user_id", req.UserID), zap.String("status", string(req.Status)))
	return nil
}
