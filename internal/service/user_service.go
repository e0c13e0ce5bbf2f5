package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/edulite/school-api/internal/models"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.User, error)
	Search(ctx context.Context, keyword string) ([]models.User, error)
	UpdateStatus(ctx context.Context, id int64, status models.UserStatus) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	CountByRole(ctx context.Context) ([]models.RoleCount, error)
}

// UserService exposes admin account operations.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Get returns one account.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user not found")
	}
	return user, nil
}

// List returns all accounts, optionally filtered by role.
func (s *UserService) List(ctx context.Context, role string) ([]models.User, error) {
	var (
		users []models.User
		err   error
	)
	if role == "" {
		users, err = s.repo.List(ctx)
	} else {
		users, err = s.repo.ListByRole(ctx, models.UserRole(role))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return users, nil
}

// Search finds accounts by username fragment.
func (s *UserService) Search(ctx context.Context, keyword string) ([]models.User, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "search keyword is required")
	}
	users, err := s.repo.Search(ctx, keyword)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search users")
	}
	return users, nil
}

// SetStatus activates or deactivates an account.
func (s *UserService) SetStatus(ctx context.Context, id int64, status models.UserStatus) error {
	if status != models.UserStatusActive && status != models.UserStatusInactive {
		return appErrors.Clone(appErrors.ErrValidation, "status must be active or inactive")
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return notFoundOr(err, "user not found")
	}
	s.logger.Info("user status changed", zap.Int64("user_id", id), zap.String("status", string(status)))
	return nil
}

// ResetPassword resets an account's password back to its username, the
// same initial credential registration hands out.
func (s *UserService) ResetPassword(ctx context.Context, id int64) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "user not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Username), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset password")
	}

	s.logger.Info("user password reset", zap.Int64("user_id", id))
	return nil
}

// CountByRole aggregates accounts per role.
func (s *UserService) CountByRole(ctx context.Context) ([]models.RoleCount, error) {
	counts, err := s.repo.CountByRole(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count users")
	}
	return counts, nil
}
