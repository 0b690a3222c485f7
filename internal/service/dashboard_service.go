package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/eschool-api/internal/models"
)

const dashboardCountsKey = "dashboard:counts"

type dashboardStore interface {
	Counts(ctx context.Context) (models.DashboardCounts, error)
}

type inboxReader interface {
	Inbox(ctx context.Context, accountID string, limit int) ([]models.ChatView, error)
}

// DashboardService assembles the admin home page.
type DashboardService struct {
	repo        dashboardStore
	notices     noticeReader
	chats       inboxReader
	cache       *CacheService
	cacheTTL    time.Duration
	recentLimit int
	logger      *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardStore, notices noticeReader, chats inboxReader, cache *CacheService, cacheTTL time.Duration, recentLimit int, logger *zap.Logger) *DashboardService {
	if recentLimit <= 0 {
		recentLimit = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, notices: notices, chats: chats, cache: cache, cacheTTL: cacheTTL, recentLimit: recentLimit, logger: logger}
}

// Admin returns entity counts, the newest notices and the caller's newest inbox messages.
func (s *DashboardService) Admin(ctx context.Context, actor models.Actor) (*models.AdminDashboard, error) {
	dashboard := &models.AdminDashboard{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.counts(gctx)
		dashboard.Counts = counts
		return err
	})
	g.Go(func() error {
		notices, err := s.notices.Recent(gctx, s.recentLimit)
		dashboard.Notices = notices
		return err
	})
	g.Go(func() error {
		inbox, err := s.chats.Inbox(gctx, actor.AccountID, s.recentLimit)
		dashboard.Inbox = inbox
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, internalError(err, "failed to load dashboard")
	}
	return dashboard, nil
}

func (s *DashboardService) counts(ctx context.Context) (models.DashboardCounts, error) {
	var counts models.DashboardCounts
	if s.cache.Get(ctx, dashboardCountsKey, &counts) {
		return counts, nil
	}
	counts, err := s.repo.Counts(ctx)
	if err != nil {
		return counts, err
	}
	s.cache.Set(ctx, dashboardCountsKey, counts, s.cacheTTL)
	return counts, nil
}
