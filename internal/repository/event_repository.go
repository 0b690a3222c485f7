package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

// EventRepository provides read access to calendar events.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// List returns all events ordered by start date.
func (r *EventRepository) List(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	if err := r.db.SelectContext(ctx, &events, "SELECT id, title, description, start_date, end_date FROM events ORDER BY start_date, id"); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}
