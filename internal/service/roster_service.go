package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/pkg/logger"
)

const defaultRosterPageSize = 20

type rosterRepository interface {
	CountRoster(ctx context.Context, search string) (int, error)
	ListRoster(ctx context.Context, search string, limit, offset int) ([]models.RosterEntry, error)
}

// RosterService serves the paginated, searchable student roster.
type RosterService struct {
	repo     rosterRepository
	pageSize int
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewRosterService constructs a roster service. A non-positive page size falls back to 20.
func NewRosterService(repo rosterRepository, pageSize int, metrics *MetricsService, logger *zap.Logger) *RosterService {
	if pageSize <= 0 {
		pageSize = defaultRosterPageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{repo: repo, pageSize: pageSize, metrics: metrics, logger: logger}
}

// List counts the matching entries, clamps the requested page into range and
// fetches that page.
func (s *RosterService) List(ctx context.Context, filter models.RosterFilter) (*models.RosterPage, error) {
	search := strings.TrimSpace(filter.Search)
	start := time.Now()

	total, err := s.repo.CountRoster(ctx, search)
	if err != nil {
		return nil, internalError(err, "failed to count students")
	}
	pagination := models.NewPagination(filter.Page, s.pageSize, total)

	page := &models.RosterPage{Items: []models.RosterEntry{}, Pagination: pagination, Search: search}
	if total > 0 {
		items, err := s.repo.ListRoster(ctx, search, pagination.PageSize, pagination.Offset())
		if err != nil {
			return nil, internalError(err, "failed to list students")
		}
		page.Items = items
	}
	s.metrics.ObserveDBQuery("roster", time.Since(start))

	logger.WithContext(ctx, s.logger).Debug("roster listed",
		zap.String("search", search),
		zap.Int("requested_page", filter.Page),
		zap.Int("page", pagination.Page),
		zap.Int("total", total),
	)
	return page, nil
}
