package models

import "github.com/golang-jwt/jwt/v5"

// SignInRequest holds credentials for authenticating a user.
type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignInResponse returns the issued token and the caller's role.
type SignInResponse struct {
	Token string   `json:"token"`
	Role  UserRole `json:"role"`
}

// RegistrationRequest creates a user account plus its role-specific
// profile row. Students receive their registration number as the initial
// username and password.
type RegistrationRequest struct {
	FirstName      string   `json:"fname" validate:"required"`
	Role           UserRole `json:"role" validate:"required,oneof=teacher student accountant principal"`
	Date           string   `json:"date" validate:"required"`
	RegNo          string   `json:"reg_no" validate:"required"`
	Salary         float64  `json:"salary"`
	RollNo         int      `json:"roll_no"`
	ClassID        int64    `json:"class_id"`
	AcademicYearID int64    `json:"academic_year_id"`
}

// ChangePasswordRequest payload for updating a password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID int64    `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
