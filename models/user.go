package models

import "strings"

// Role is the campus role carried by the token and the identity record.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleFaculty Role = "FACULTY"
	RoleStudent Role = "STUDENT"
	RoleStaff   Role = "STAFF"
)

// ParseRole normalises a role string from the backend ("admin", "Faculty").
func ParseRole(s string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(s)))
}

// Valid reports whether r is one of the known campus roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFaculty, RoleStudent, RoleStaff:
		return true
	}
	return false
}

// Screens lists the screens shown to a role. Advisory only: the backend
// enforces authorization on every request.
func (r Role) Screens() []string {
	common := []string{"dashboard", "facilities", "cafeteria", "events", "lostfound"}
	switch r {
	case RoleAdmin:
		return append(common, "courses", "exams", "resources", "attendance")
	case RoleFaculty:
		return append(common, "courses", "exams", "resources", "attendance")
	case RoleStaff:
		return common
	case RoleStudent:
		return append(common, "exams", "resources", "attendance")
	}
	return nil
}

// Credentials structure for login request
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// User is the identity record returned by GET /auth/current.
type User struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role,omitempty"`
}

// LoginResponse is the body returned by POST /auth/login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RegisterResponse is the body returned by POST /auth/register.
type RegisterResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}
