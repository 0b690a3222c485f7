package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

// DashboardRepository aggregates the admin home counters.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts returns entity totals and the student gender split in one round trip.
func (r *DashboardRepository) Counts(ctx context.Context) (models.DashboardCounts, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM students) AS students,
        (SELECT COUNT(*) FROM parents) AS parents,
        (SELECT COUNT(*) FROM teachers) AS teachers,
        (SELECT COUNT(*) FROM classes) AS classes,
        (SELECT COUNT(*) FROM students WHERE gender = 'M') AS male,
        (SELECT COUNT(*) FROM students WHERE gender = 'F') AS female`
	var counts models.DashboardCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return models.DashboardCounts{}, fmt.Errorf("dashboard counts: %w", err)
	}
	return counts, nil
}
