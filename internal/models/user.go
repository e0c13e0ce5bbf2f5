package models

import "time"

// UserRole enumerates the closed set of roles recognised by the RBAC layer.
type UserRole string

const (
	RoleAdmin      UserRole = "admin"
	RoleTeacher    UserRole = "teacher"
	RoleStudent    UserRole = "student"
	RoleAccountant UserRole = "accountant"
	RolePrincipal  UserRole = "principal"
)

// UserStatus enumerates account states.
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User represents an application user stored in the users table.
type User struct {
	ID           int64      `db:"user_id" json:"user_id"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password" json:"-"`
	Role         UserRole   `db:"role" json:"role"`
	Status       UserStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// RoleCount aggregates users per role for admin statistics.
type RoleCount struct {
	Role  UserRole `db:"role" json:"role"`
	Total int      `db:"total" json:"total"`
}
