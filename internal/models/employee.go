package models

import "time"

// Employee is the shared profile row for teachers, accountants and the
// principal, linked one-to-one to a user account.
type Employee struct {
	ID          int64      `db:"employee_id" json:"employee_id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	RegNo       string     `db:"reg_no" json:"reg_no"`
	FirstName   string     `db:"fname" json:"fname"`
	MiddleName  *string    `db:"mname" json:"mname,omitempty"`
	LastName    *string    `db:"lname" json:"lname,omitempty"`
	Gender      *string    `db:"gender" json:"gender,omitempty"`
	Mobile      *string    `db:"mobile" json:"mobile,omitempty"`
	Email       *string    `db:"email" json:"email,omitempty"`
	Address     *string    `db:"address" json:"address,omitempty"`
	Image       *string    `db:"image" json:"image,omitempty"`
	JoiningDate time.Time  `db:"joining_date" json:"joining_date"`
	Salary      float64    `db:"salary" json:"salary"`
}

// EmployeeSummary is an employee row with account status attached.
type EmployeeSummary struct {
	EmployeeID int64      `db:"employee_id" json:"employee_id"`
	UserID     int64      `db:"user_id" json:"user_id"`
	FirstName  string     `db:"fname" json:"fname"`
	LastName   *string    `db:"lname" json:"lname,omitempty"`
	Salary     float64    `db:"salary" json:"salary"`
	Status     UserStatus `db:"status" json:"status"`
}

// EmployeeProfile joins the employee row with its account.
type EmployeeProfile struct {
	Employee
	Username string     `db:"username" json:"username"`
	Status   UserStatus `db:"status" json:"status"`
}

// UpdateEmployeeProfileRequest is an employee's self-service update.
type UpdateEmployeeProfileRequest struct {
	FirstName  string `json:"fname" validate:"required"`
	MiddleName string `json:"mname"`
	LastName   string `json:"lname"`
	Gender     string `json:"gender"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// UpdateSalaryRequest adjusts an employee's salary.
type UpdateSalaryRequest struct {
	EmployeeID int64   `json:"employee_id" validate:"required"`
	Salary     float64 `json:"salary" validate:"required,gt=0"`
}

// ChangeEmployeeStatusRequest activates or deactivates a staff account.
type ChangeEmployeeStatusRequest struct {
	UserID int64      `json:"user_id" validate:"required"`
	Status UserStatus `json:"status" validate:"required,oneof=active inactive"`
}
