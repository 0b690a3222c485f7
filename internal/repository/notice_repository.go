package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

// NoticeRepository provides read access to notices.
type NoticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository constructs a NoticeRepository.
func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Recent returns the newest notices.
func (r *NoticeRepository) Recent(ctx context.Context, limit int) ([]models.Notice, error) {
	query := fmt.Sprintf("SELECT id, title, body, post_date_time FROM notices ORDER BY post_date_time DESC, id LIMIT %d", limit)
	notices := []models.Notice{}
	if err := r.db.SelectContext(ctx, &notices, query); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// FindByID fetches a notice.
func (r *NoticeRepository) FindByID(ctx context.Context, id string) (*models.Notice, error) {
	var notice models.Notice
	if err := r.db.GetContext(ctx, &notice, "SELECT id, title, body, post_date_time FROM notices WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &notice, nil
}
