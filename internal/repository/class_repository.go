package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

// ClassRepository provides access to classes.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns all classes ordered by name.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	classes := []models.Class{}
	if err := r.db.SelectContext(ctx, &classes, "SELECT id, name FROM classes ORDER BY name, id"); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

// FindByID fetches a class.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	if err := r.db.GetContext(ctx, &class, "SELECT id, name FROM classes WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &class, nil
}

// Exists reports whether the class exists.
func (r *ClassRepository) Exists(ctx context.Context, id string) (bool, error) {
	return exists(ctx, r.db, "class", "SELECT 1 FROM classes WHERE id = $1", id)
}
