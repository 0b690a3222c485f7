package models

// Option is a dropdown entry.
type Option struct {
	ID    string `db:"id" json:"id"`
	Label string `db:"label" json:"label"`
}

// StudentFormContext carries the dropdown data needed to render the student form.
type StudentFormContext struct {
	Classes []Option `json:"classes"`
	Parents []Option `json:"parents"`
}
