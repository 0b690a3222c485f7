package service

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/eschool-api/internal/models"
)

const defaultSearchLimit = 10

type personSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]models.PersonSummary, error)
}

type offeringSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]models.OfferingView, error)
}

// SearchService runs the cross-entity prefix search.
type SearchService struct {
	students  personSearcher
	teachers  personSearcher
	parents   personSearcher
	offerings offeringSearcher
	limit     int
	logger    *zap.Logger
}

// NewSearchService constructs a SearchService.
func NewSearchService(students, teachers, parents personSearcher, offerings offeringSearcher, limit int, logger *zap.Logger) *SearchService {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{students: students, teachers: teachers, parents: parents, offerings: offerings, limit: limit, logger: logger}
}

// Search matches people by national ID or birth date prefix and offerings by
// class or subject name prefix. A blank term yields four empty lists.
func (s *SearchService) Search(ctx context.Context, term string) (models.SearchResult, error) {
	result := models.EmptySearchResult()
	term = strings.TrimSpace(term)
	if term == "" {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	people := []struct {
		repo personSearcher
		dest *[]models.PersonSummary
	}{
		{s.students, &result.Students},
		{s.teachers, &result.Teachers},
		{s.parents, &result.Parents},
	}
	for _, p := range people {
		p := p
		g.Go(func() error {
			hits, err := p.repo.Search(gctx, term, s.limit)
			if err != nil {
				return err
			}
			*p.dest = hits
			return nil
		})
	}
	g.Go(func() error {
		hits, err := s.offerings.Search(gctx, term, s.limit)
		if err != nil {
			return err
		}
		result.Offerings = hits
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.EmptySearchResult(), internalError(err, "failed to search")
	}
	return result, nil
}
