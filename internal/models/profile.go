package models

import (
	"strings"
	"time"
)

// Gender is stored as a single character.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Person holds the personal data shared by student, teacher and parent profiles.
type Person struct {
	FirstName   string    `db:"first_name" json:"first_name"`
	MidName     string    `db:"mid_name" json:"mid_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Gender      Gender    `db:"gender" json:"gender"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	NationalID  string    `db:"national_id" json:"national_id"`
}

// FullName joins the non-empty name parts.
func (p Person) FullName() string {
	parts := make([]string, 0, 3)
	for _, part := range []string{p.FirstName, p.MidName, p.LastName} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " ")
}

// Address is owned by exactly one profile.
type Address struct {
	ID       string `db:"id" json:"id,omitempty"`
	Line1    string `db:"line1" json:"line1"`
	Line2    string `db:"line2" json:"line2"`
	District string `db:"district" json:"district"`
	Location string `db:"location" json:"location"`
}

// Student is a learner profile.
type Student struct {
	ID string `db:"id" json:"id"`
	Person
	AddressID *string   `db:"address_id" json:"address_id,omitempty"`
	ClassID   string    `db:"class_id" json:"class_id"`
	ParentID  *string   `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Teacher is an instructor profile.
type Teacher struct {
	ID string `db:"id" json:"id"`
	Person
	AddressID *string `db:"address_id" json:"address_id,omitempty"`
}

// Parent is a guardian profile.
type Parent struct {
	ID string `db:"id" json:"id"`
	Person
	AddressID *string `db:"address_id" json:"address_id,omitempty"`
}

// PersonSummary is a flat search hit for any profile kind.
type PersonSummary struct {
	ID string `db:"id" json:"id"`
	Person
}

// StudentProfile is the fully populated student view: account, profile,
// address, class and parent.
type StudentProfile struct {
	AccountID   string  `json:"account_id"`
	Username    string  `json:"username"`
	Email       *string `json:"email,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Student
	Address   *Address `json:"address,omitempty"`
	ClassName string   `json:"class_name"`
	Parent    *Parent  `json:"parent,omitempty"`
}

// TeacherProfile is a teacher with the contact data of its account.
type TeacherProfile struct {
	AccountID   string  `db:"account_id" json:"account_id"`
	Username    string  `db:"username" json:"username"`
	Email       *string `db:"email" json:"email,omitempty"`
	PhoneNumber *string `db:"phone_number" json:"phone_number,omitempty"`
	Teacher
}

// StudentAccount groups the records written together when a student is
// created or edited.
type StudentAccount struct {
	Account *Account
	Student *Student
	Address *Address
}
