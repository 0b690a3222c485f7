package models

import "time"

// RosterFilter selects a roster page. Search is matched as contains on first
// and last name and as prefix on username, national ID and class name.
type RosterFilter struct {
	Search   string
	Page     int
	PageSize int
}

// RosterEntry is a flat display record of one student.
type RosterEntry struct {
	AccountID   string    `db:"account_id" json:"account_id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	Username    string    `db:"username" json:"username"`
	FirstName   string    `db:"first_name" json:"first_name"`
	MidName     string    `db:"mid_name" json:"mid_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Gender      Gender    `db:"gender" json:"gender"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	NationalID  string    `db:"national_id" json:"national_id"`
	ClassName   string    `db:"class_name" json:"class_name"`
}

// RosterPage is one page of roster entries.
type RosterPage struct {
	Items      []RosterEntry `json:"items"`
	Pagination Pagination    `json:"pagination"`
	Search     string        `json:"search,omitempty"`
}
