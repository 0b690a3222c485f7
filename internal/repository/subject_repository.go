package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

const offeringSelect = `SELECT o.id, o.class_id, o.subject_detail_id, o.teacher_id, o.start_time, o.end_time,
        c.name AS class_name, sd.name AS subject_name, sd.description AS subject_description,
        NULLIF(CONCAT_WS(' ', t.first_name, NULLIF(t.mid_name, ''), t.last_name), '') AS teacher_name
        FROM subjects o
        JOIN classes c ON c.id = o.class_id
        JOIN subject_details sd ON sd.id = o.subject_detail_id
        LEFT JOIN teachers t ON t.id = o.teacher_id`

// SubjectRepository provides access to subject offerings.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs a SubjectRepository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns every offering ordered by class and subject name.
func (r *SubjectRepository) List(ctx context.Context) ([]models.OfferingView, error) {
	offerings := []models.OfferingView{}
	if err := r.db.SelectContext(ctx, &offerings, offeringSelect+" ORDER BY c.name, sd.name, o.id"); err != nil {
		return nil, fmt.Errorf("list offerings: %w", err)
	}
	return offerings, nil
}

// ListByClass returns the offerings of a class ordered by start time.
func (r *SubjectRepository) ListByClass(ctx context.Context, classID string) ([]models.OfferingView, error) {
	offerings := []models.OfferingView{}
	if err := r.db.SelectContext(ctx, &offerings, offeringSelect+" WHERE o.class_id = $1 ORDER BY o.start_time, o.id", classID); err != nil {
		return nil, fmt.Errorf("list class offerings: %w", err)
	}
	return offerings, nil
}

// FindByID fetches a single offering view.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.OfferingView, error) {
	var offering models.OfferingView
	if err := r.db.GetContext(ctx, &offering, offeringSelect+" WHERE o.id = $1", id); err != nil {
		return nil, err
	}
	return &offering, nil
}

// Search returns offerings whose class or subject name starts with term.
func (r *SubjectRepository) Search(ctx context.Context, term string, limit int) ([]models.OfferingView, error) {
	query := fmt.Sprintf(`%s WHERE c.name LIKE $1 ESCAPE '\' OR sd.name LIKE $1 ESCAPE '\'
        ORDER BY c.name, sd.name, o.id LIMIT %d`, offeringSelect, limit)
	offerings := []models.OfferingView{}
	if err := r.db.SelectContext(ctx, &offerings, query, prefixPattern(term)); err != nil {
		return nil, fmt.Errorf("search offerings: %w", err)
	}
	return offerings, nil
}
