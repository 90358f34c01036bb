package domain

import "errors"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

var ErrInvalidRole = errors.New("invalid role")

// ValidRole reports whether role is one of the three console roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User is a backend-owned account record. CodeApogee and CNE are only set
// for students.
type User struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	StreamID   int64  `json:"stream_id"`
	CodeApogee string `json:"code_apoge,omitempty"`
	CNE        string `json:"cne,omitempty"`
}

// UserInput carries the fields an admin submits when creating or editing an
// account. Password may be empty on update.
type UserInput struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Role       string `json:"role"`
	StreamID   int64  `json:"stream_id"`
	CodeApogee string `json:"code_apoge,omitempty"`
	CNE        string `json:"cne,omitempty"`
}

// Registration is the self-service sign-up payload. Only students and
// teachers may register.
type Registration struct {
	FullName   string
	Email      string
	Password   string
	Role       string
	StreamID   int64
	CodeApogee string
	CNE        string
}

// SplitByRole partitions users into students and teachers, preserving order.
// Admin accounts are omitted.
func SplitByRole(users []User) (students, teachers []User) {
	for _, u := range users {
		switch u.Role {
		case RoleStudent:
			students = append(students, u)
		case RoleTeacher:
			teachers = append(teachers, u)
		}
	}
	return students, teachers
}

// Teachers returns only the teacher accounts.
func Teachers(users []User) []User {
	_, teachers := SplitByRole(users)
	return teachers
}
