package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/eschool-api/internal/models"
)

type gradeStore interface {
	ListMarks(ctx context.Context, filter models.MarksFilter) ([]models.GradeView, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.GradeView, error)
	FindForStudentSubject(ctx context.Context, studentID, subjectID string) (*models.GradeView, error)
}

type offeringStore interface {
	List(ctx context.Context) ([]models.OfferingView, error)
	ListByClass(ctx context.Context, classID string) ([]models.OfferingView, error)
	FindByID(ctx context.Context, id string) (*models.OfferingView, error)
}

type studentDirectory interface {
	List(ctx context.Context) ([]models.PersonSummary, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type classLister interface {
	List(ctx context.Context) ([]models.Class, error)
}

// GradeService exposes grade listings for administrators and students.
type GradeService struct {
	grades    gradeStore
	offerings offeringStore
	students  studentDirectory
	classes   classLister
	logger    *zap.Logger
}

// NewGradeService constructs a GradeService.
func NewGradeService(grades gradeStore, offerings offeringStore, students studentDirectory, classes classLister, logger *zap.Logger) *GradeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{grades: grades, offerings: offerings, students: students, classes: classes, logger: logger}
}

// Marks lists grades narrowed by every set filter. Without any filter the
// list is empty. Dropdown options are always populated.
func (s *GradeService) Marks(ctx context.Context, filter models.MarksFilter) (*models.MarksPage, error) {
	page := &models.MarksPage{Marks: []models.GradeView{}, Classes: []models.Option{}, Students: []models.Option{}, Subjects: []models.Option{}}
	if !filter.Empty() {
		marks, err := s.grades.ListMarks(ctx, filter)
		if err != nil {
			return nil, internalError(err, "failed to list marks")
		}
		page.Marks = marks
	}

	classes, err := s.classes.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load classes")
	}
	for _, c := range classes {
		page.Classes = append(page.Classes, models.Option{ID: c.ID, Label: c.Name})
	}
	students, err := s.students.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load students")
	}
	for _, st := range students {
		page.Students = append(page.Students, models.Option{ID: st.ID, Label: fmt.Sprintf("%s %s %s", st.NationalID, st.FirstName, st.LastName)})
	}
	offerings, err := s.offerings.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load subjects")
	}
	for _, o := range offerings {
		page.Subjects = append(page.Subjects, models.Option{ID: o.ID, Label: o.Label()})
	}
	return page, nil
}

// StudentGrades returns a student's report card. The average is set only when
// every grade carries a total.
func (s *GradeService) StudentGrades(ctx context.Context, studentID string) (*models.StudentGrades, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	grades, err := s.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, internalError(err, "failed to load grades")
	}
	return &models.StudentGrades{StudentName: student.FullName(), Grades: grades, Average: averageTotal(grades)}, nil
}

// SubjectMark returns the student's grade in one offering; Grade is nil when none is recorded.
func (s *GradeService) SubjectMark(ctx context.Context, studentID, subjectID string) (*models.SubjectMark, error) {
	offering, err := s.offerings.FindByID(ctx, subjectID)
	if err != nil {
		return nil, lookupError(err, "subject not found", "failed to load subject")
	}
	grade, err := s.grades.FindForStudentSubject(ctx, studentID, subjectID)
	if err != nil {
		return nil, internalError(err, "failed to load grade")
	}
	mark := &models.SubjectMark{Grade: grade, ClassName: offering.ClassName}
	if grade != nil && grade.Total != nil && *grade.Total > 0 {
		avg := *grade.Total
		mark.Average = &avg
	}
	return mark, nil
}

func averageTotal(grades []models.GradeView) *float64 {
	if len(grades) == 0 {
		return nil
	}
	var sum float64
	for _, g := range grades {
		if g.Total == nil {
			return nil
		}
		sum += *g.Total
	}
	avg := sum / float64(len(grades))
	return &avg
}
