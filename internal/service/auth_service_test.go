package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/edulite/school-api/internal/models"
	"github.com/edulite/school-api/internal/repository"
	appErrors "github.com/edulite/school-api/pkg/errors"
)

type mockAuthUserRepo struct {
	activeUser      *models.User
	userByID        *models.User
	createErr       error
	createdUser     *models.User
	createdEmployee *models.Employee
	updatedHash     string
}

func (m *mockAuthUserRepo) FindActiveByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.activeUser == nil || m.activeUser.Username != username {
		return nil, sql.ErrNoRows
	}
	return m.activeUser, nil
}

func (m *mockAuthUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if m.userByID == nil {
		return nil, sql.ErrNoRows
	}
	return m.userByID, nil
}

func (m *mockAuthUserRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	m.updatedHash = passwordHash
	return nil
}

func (m *mockAuthUserRepo) CreateWithEmployee(ctx context.Context, user *models.User, employee *models.Employee) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 42
	m.createdUser = user
	m.createdEmployee = employee
	return nil
}

type mockAuthStudentRepo struct {
	registerErr  error
	enrollmentID int64
	hash         string
}

func (m *mockAuthStudentRepo) Register(ctx context.Context, req *models.RegisterStudentRequest, passwordHash string) (int64, int64, int64, error) {
	if m.registerErr != nil {
		return 0, 0, 0, m.registerErr
	}
	m.hash = passwordHash
	return 1, 2, m.enrollmentID, nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{Secret: "test-secret", Expiration: time.Hour, Issuer: "school-api"}
}

func TestAuthServiceSignIn(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &mockAuthUserRepo{activeUser: &models.User{
		ID: 7, Username: "EMP-001", PasswordHash: string(hash), Role: models.RoleTeacher, Status: models.UserStatusActive,
	}}
	svc := NewAuthService(users, &mockAuthStudentRepo{}, nil, nil, testAuthConfig())

	res, err := svc.SignIn(context.Background(), models.SignInRequest{Username: "EMP-001", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.RoleTeacher, res.Role)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestAuthServiceSignInWrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	users := &mockAuthUserRepo{activeUser: &models.User{Username: "EMP-001", PasswordHash: string(hash)}}
	svc := NewAuthService(users, &mockAuthStudentRepo{}, nil, nil, testAuthConfig())

	_, err := svc.SignIn(context.Background(), models.SignInRequest{Username: "EMP-001", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceSignInUnknownUser(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, &mockAuthStudentRepo{}, nil, nil, testAuthConfig())

	_, err := svc.SignIn(context.Background(), models.SignInRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	// Same error for unknown user and bad password.
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenRejectsForgery(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, &mockAuthStudentRepo{}, nil, nil, testAuthConfig())
	other := NewAuthService(&mockAuthUserRepo{}, &mockAuthStudentRepo{}, nil, nil, AuthConfig{Secret: "other-secret", Expiration: time.Hour})

	hash, _ := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	users := &mockAuthUserRepo{activeUser: &models.User{ID: 1, Username: "u", PasswordHash: string(hash)}}
	forger := NewAuthService(users, &mockAuthStudentRepo{}, nil, nil, AuthConfig{Secret: "other-secret", Expiration: time.Hour})
	res, err := forger.SignIn(context.Background(), models.SignInRequest{Username: "u", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.Token)
	require.Error(t, err)

	_, err = other.ValidateToken(res.Token)
	require.NoError(t, err)
}

func TestAuthServiceRegisterStaff(t *testing.T) {
	users := &mockAuthUserRepo{}
	svc := NewAuthService(users, &mockAuthStudentRepo{}, nil, nil, testAuthConfig())

	user, err := svc.RegisterStaff(context.Background(), models.RegistrationRequest{
		FirstName: "Asha",
		Role:      models.RoleAccountant,
		Date:      "2026-06-01",
		RegNo:     "EMP-010",
		Salary:    42000,
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP-010", user.Username)
	assert.Equal(t, models.RoleAccountant, user.Role)
	require.NotNil(t, users.createdEmployee)
	assert.Equal(t, 42000.0, users.createdEmployee.Salary)
	// Initial password is the registration number.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("EMP-010")))
}

func TestAuthServiceRegisterStaffRejectsStudentRole(t *testing.T) {
	svc := NewAuthService(&mockAuthUserRepo{}, &mockAuthStudentRepo{}, nil, nil, testAuthConfig())

	_, err := svc.RegisterStaff(context.Background(), models.RegistrationRequest{
		FirstName: "Ravi",
		Role:      models.RoleStudent,
		Date:      "2026-06-01",
		RegNo:     "STU-001",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterStaffDuplicateRegNo(t *testing.T) {
	users := &mockAuthUserRepo{createErr: fmt.Errorf("create user: %w", repository.ErrDuplicate)}
	svc := NewAuthService(users, &mockAuthStudentRepo{}, nil, nil, testAuthConfig())

	_, err := svc.RegisterStaff(context.Background(), models.RegistrationRequest{
		FirstName: "Asha",
		Role:      models.RoleTeacher,
		Date:      "2026-06-01",
		RegNo:     "EMP-010",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRegisterStudent(t *testing.T) {
	students := &mockAuthStudentRepo{enrollmentID: 91}
	svc := NewAuthService(&mockAuthUserRepo{}, students, nil, nil, testAuthConfig())

	enrollmentID, err := svc.RegisterStudent(context.Background(), models.RegisterStudentRequest{
		RegNo:          "STU-100",
		FirstName:      "Meera",
		Gender:         "female",
		RollNo:         14,
		ClassID:        3,
		AcademicYearID: 1,
		AdmissionDate:  "2026-06-15",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(91), enrollmentID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(students.hash), []byte("STU-100")))
}

func TestAuthServiceChangePassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	users := &mockAuthUserRepo{userByID: &models.User{ID: 7, PasswordHash: string(hash)}}
	svc := NewAuthService(users, &mockAuthStudentRepo{}, nil, nil, testAuthConfig())

	err := svc.ChangePassword(context.Background(), 7, models.ChangePasswordRequest{
		OldPassword: "old-pass",
		NewPassword: "new-pass",
	})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.updatedHash), []byte("new-pass")))
}

func TestAuthServiceChangePasswordWrongOld(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	users := &mockAuthUserRepo{userByID: &models.User{ID: 7, PasswordHash: string(hash)}}
	svc := NewAuthService(users, &mockAuthStudentRepo{}, nil, nil, testAuthConfig())

	err := svc.ChangePassword(context.Background(), 7, models.ChangePasswordRequest{
		OldPassword: "not-it",
		NewPassword: "new-pass",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, users.updatedHash)
}
