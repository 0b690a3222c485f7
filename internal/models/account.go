package models

import "time"

// Role represents the available roles for the RBAC system.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
	RoleParent  Role = "PARENT"
)

// Label returns the human readable role name.
func (r Role) Label() string {
	switch r {
	case RoleTeacher:
		return "Teacher"
	case RoleStudent:
		return "Student"
	case RoleParent:
		return "Parent"
	default:
		return "Admin"
	}
}

// Account is the identity record. It links to at most one profile; an account
// without a profile is an administrator.
type Account struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        *string   `db:"email" json:"email,omitempty"`
	PhoneNumber  *string   `db:"phone_number" json:"phone_number,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	StudentID    *string   `db:"student_id" json:"student_id,omitempty"`
	TeacherID    *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	ParentID     *string   `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Role derives the account role from its profile linkage.
func (a Account) Role() Role {
	switch {
	case a.TeacherID != nil:
		return RoleTeacher
	case a.ParentID != nil:
		return RoleParent
	case a.StudentID != nil:
		return RoleStudent
	default:
		return RoleAdmin
	}
}

// ProfileID returns the linked profile identifier, empty for administrators.
func (a Account) ProfileID() string {
	for _, id := range []*string{a.StudentID, a.TeacherID, a.ParentID} {
		if id != nil {
			return *id
		}
	}
	return ""
}

// AccountOption is a chat recipient entry.
type AccountOption struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Label    string `json:"label"`
}

// UpdateAccountRequest is the self-service profile edit payload.
type UpdateAccountRequest struct {
	ID          string `json:"id" validate:"required"`
	Username    string `json:"username" validate:"required,max=64"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=32"`
}
