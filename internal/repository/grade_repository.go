package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

const gradeSelect = `SELECT g.id, g.student_id, g.subject_id, g.total,
        CONCAT_WS(' ', s.first_name, NULLIF(s.mid_name, ''), s.last_name) AS student_name, s.national_id,
        c.name AS class_name, sd.name AS subject_name
        FROM grades g
        JOIN students s ON s.id = g.student_id
        JOIN classes c ON c.id = s.class_id
        JOIN subjects o ON o.id = g.subject_id
        JOIN subject_details sd ON sd.id = o.subject_detail_id`

// GradeRepository provides read access to grades.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs a GradeRepository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// ListMarks returns grades matching every non-empty filter dimension.
func (r *GradeRepository) ListMarks(ctx context.Context, filter models.MarksFilter) ([]models.GradeView, error) {
	var conditions []string
	var args []interface{}
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("s.class_id", filter.ClassID)
	add("g.subject_id", filter.SubjectID)
	add("g.student_id", filter.StudentID)

	query := gradeSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.name, sd.name, s.last_name, s.first_name, g.id"

	grades := []models.GradeView{}
	if err := r.db.SelectContext(ctx, &grades, query, args...); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return grades, nil
}

// ListByStudent returns all grades of a student ordered by subject name.
func (r *GradeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.GradeView, error) {
	grades := []models.GradeView{}
	if err := r.db.SelectContext(ctx, &grades, gradeSelect+" WHERE g.student_id = $1 ORDER BY sd.name, g.id", studentID); err != nil {
		return nil, fmt.Errorf("list student grades: %w", err)
	}
	return grades, nil
}

// FindForStudentSubject returns the grade of a student in one offering, or nil when none exists.
func (r *GradeRepository) FindForStudentSubject(ctx context.Context, studentID, subjectID string) (*models.GradeView, error) {
	var grade models.GradeView
	err := r.db.GetContext(ctx, &grade, gradeSelect+" WHERE g.student_id = $1 AND g.subject_id = $2 LIMIT 1", studentID, subjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find grade: %w", err)
	}
	return &grade, nil
}
