package domain

import "time"

type EmployeeRole string

const (
	EmployeeRoleStaff   EmployeeRole = "STAFF"
	EmployeeRoleManager EmployeeRole = "MANAGER"
)

type Employee struct {
	ID           int32        `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         EmployeeRole `json:"role"`
	Active       bool         `json:"active"`
	CreatedOn    time.Time    `json:"created_on"`
	UpdatedOn    time.Time    `json:"updated_on"`
}
