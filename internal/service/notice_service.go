package service

import (
	"context"

	"github.com/noah-isme/eschool-api/internal/models"
)

type noticeStore interface {
	noticeReader
	FindByID(ctx context.Context, id string) (*models.Notice, error)
}

// NoticeService exposes notices.
type NoticeService struct {
	repo noticeStore
}

// NewNoticeService constructs a NoticeService.
func NewNoticeService(repo noticeStore) *NoticeService {
	return &NoticeService{repo: repo}
}

// Get returns a notice by ID.
func (s *NoticeService) Get(ctx context.Context, id string) (*models.Notice, error) {
	notice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "notice not found", "failed to load notice")
	}
	return notice, nil
}
