package models

// Grade associates a student with a subject offering and a computed total.
type Grade struct {
	ID        string   `db:"id" json:"id"`
	StudentID string   `db:"student_id" json:"student_id"`
	SubjectID string   `db:"subject_id" json:"subject_id"`
	Total     *float64 `db:"total" json:"total,omitempty"`
}

// GradeView is a grade joined with student, class and subject names.
type GradeView struct {
	Grade
	StudentName string `db:"student_name" json:"student_name"`
	NationalID  string `db:"national_id" json:"national_id"`
	ClassName   string `db:"class_name" json:"class_name"`
	SubjectName string `db:"subject_name" json:"subject_name"`
}

// MarksFilter narrows the admin marks listing. Empty fields are ignored.
type MarksFilter struct {
	ClassID   string
	SubjectID string
	StudentID string
}

// Empty reports whether no filter dimension is set.
func (f MarksFilter) Empty() bool {
	return f.ClassID == "" && f.SubjectID == "" && f.StudentID == ""
}

// MarksPage is the admin marks listing with its filter dropdowns.
type MarksPage struct {
	Marks    []GradeView `json:"marks"`
	Classes  []Option    `json:"classes"`
	Students []Option    `json:"students"`
	Subjects []Option    `json:"subjects"`
}

// StudentGrades is the per-student report card.
type StudentGrades struct {
	StudentName string      `json:"student_name"`
	Grades      []GradeView `json:"grades"`
	Average     *float64    `json:"average"`
}

// SubjectMark is a single grade with its class context. Grade is nil when no
// mark has been recorded yet.
type SubjectMark struct {
	Grade     *GradeView `json:"grade"`
	ClassName string     `json:"class_name,omitempty"`
	Average   *float64   `json:"average"`
}
