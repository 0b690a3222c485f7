package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

// AbsenceRepository provides read access to absences.
type AbsenceRepository struct {
	db *sqlx.DB
}

// NewAbsenceRepository constructs an AbsenceRepository.
func NewAbsenceRepository(db *sqlx.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

// ListByStudent returns a student's absences ordered by lesson date.
func (r *AbsenceRepository) ListByStudent(ctx context.Context, studentID string) ([]models.AbsenceView, error) {
	const query = `SELECT ab.id, ab.student_id, ab.lesson_id, l.date AS lesson_date, l.subject_id, sd.name AS subject_name, ab.created_at
        FROM absences ab
        JOIN lessons l ON l.id = ab.lesson_id
        JOIN subjects o ON o.id = l.subject_id
        JOIN subject_details sd ON sd.id = o.subject_detail_id
        WHERE ab.student_id = $1
        ORDER BY l.date, ab.id`
	absences := []models.AbsenceView{}
	if err := r.db.SelectContext(ctx, &absences, query, studentID); err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}
	return absences, nil
}
