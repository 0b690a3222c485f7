package models

import "time"

// Class is a named grouping students belong to.
type Class struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// SubjectDetail is the catalog entry shared by subject offerings.
type SubjectDetail struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
}

// SubjectOffering is a scheduled subject for one class, teacher and time slot.
type SubjectOffering struct {
	ID              string    `db:"id" json:"id"`
	ClassID         string    `db:"class_id" json:"class_id"`
	SubjectDetailID string    `db:"subject_detail_id" json:"subject_detail_id"`
	TeacherID       *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	StartTime       time.Time `db:"start_time" json:"start_time"`
	EndTime         time.Time `db:"end_time" json:"end_time"`
}

// OfferingView is a subject offering joined with its class, subject detail and teacher.
type OfferingView struct {
	SubjectOffering
	ClassName          string  `db:"class_name" json:"class_name"`
	SubjectName        string  `db:"subject_name" json:"subject_name"`
	SubjectDescription *string `db:"subject_description" json:"subject_description,omitempty"`
	TeacherName        *string `db:"teacher_name" json:"teacher_name,omitempty"`
}

// Label renders "{class} - {subject}".
func (o OfferingView) Label() string {
	return o.ClassName + " - " + o.SubjectName
}

// ClassOverview is the "my class" payload.
type ClassOverview struct {
	Class        Class          `json:"class"`
	Offerings    []OfferingView `json:"offerings"`
	SubjectNames []string       `json:"subject_names"`
}
