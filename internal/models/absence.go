package models

import "time"

// AbsenceView is an absence joined with its lesson and subject.
type AbsenceView struct {
	ID          string    `db:"id" json:"id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	LessonID    string    `db:"lesson_id" json:"lesson_id"`
	LessonDate  time.Time `db:"lesson_date" json:"lesson_date"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TruancyReport lists a student's absences.
type TruancyReport struct {
	StudentName string        `json:"student_name"`
	ClassName   string        `json:"class_name"`
	Absences    []AbsenceView `json:"absences"`
}
