package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

// TeacherRepository provides access to teacher profiles.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindProfile fetches a teacher with the contact data of its account.
func (r *TeacherRepository) FindProfile(ctx context.Context, id string) (*models.TeacherProfile, error) {
	const query = `SELECT COALESCE(a.id, '') AS account_id, COALESCE(a.username, '') AS username, a.email, a.phone_number,
        t.id, t.first_name, t.mid_name, t.last_name, t.gender, t.date_of_birth, t.national_id, t.address_id
        FROM teachers t
        LEFT JOIN accounts a ON a.teacher_id = t.id
        WHERE t.id = $1`
	var profile models.TeacherProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Search returns teachers whose national ID or birth date starts with term.
func (r *TeacherRepository) Search(ctx context.Context, term string, limit int) ([]models.PersonSummary, error) {
	return searchPeople(ctx, r.db, "teachers", term, limit)
}
