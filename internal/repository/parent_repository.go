package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

// ParentRepository provides access to parent profiles.
type ParentRepository struct {
	db *sqlx.DB
}

// NewParentRepository constructs a ParentRepository.
func NewParentRepository(db *sqlx.DB) *ParentRepository {
	return &ParentRepository{db: db}
}

// List returns all parents ordered by last and first name.
func (r *ParentRepository) List(ctx context.Context) ([]models.Parent, error) {
	query := fmt.Sprintf("SELECT %s, address_id FROM parents ORDER BY last_name, first_name, id", personColumns)
	parents := []models.Parent{}
	if err := r.db.SelectContext(ctx, &parents, query); err != nil {
		return nil, fmt.Errorf("list parents: %w", err)
	}
	return parents, nil
}

// Exists reports whether the parent exists.
func (r *ParentRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, "parent", "SELECT 1 FROM parents WHERE id = $1", id)
}

// Search returns parents whose national ID or birth date starts with term.
func (r *ParentRepository) Search(ctx context.Context, term string, limit int) ([]models.PersonSummary, error) {
	return searchPeople(ctx, r.db, "parents", term, limit)
}
