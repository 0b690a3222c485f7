package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/eschool-api/internal/models"
)

type mockRosterRepo struct {
	total      int
	countErr   error
	listCalls  int
	lastSearch string
	lastLimit  int
	lastOffset int
}

func (m *mockRosterRepo) CountRoster(ctx context.Context, search string) (int, error) {
	m.lastSearch = search
	return m.total, m.countErr
}

func (m *mockRosterRepo) ListRoster(ctx context.Context, search string, limit, offset int) ([]models.RosterEntry, error) {
	m.listCalls++
	m.lastSearch = search
	m.lastLimit, m.lastOffset = limit, offset
	entries := []models.RosterEntry{}
	for i := offset; i < offset+limit && i < m.total; i++ {
		entries = append(entries, models.RosterEntry{StudentID: fmt.Sprintf("s%02d", i)})
	}
	return entries, nil
}

func TestRosterServiceClampsPastLastPage(t *testing.T) {
	repo := &mockRosterRepo{total: 45}
	svc := NewRosterService(repo, 20, nil, zap.NewNop())

	page, err := svc.List(context.Background(), models.RosterFilter{Page: 99})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Pagination.Page)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.Equal(t, 45, page.Pagination.TotalCount)
	assert.True(t, page.Pagination.HasPrevious)
	assert.False(t, page.Pagination.HasNext)
	assert.Equal(t, 40, repo.lastOffset)
	assert.Len(t, page.Items, 5)
}

func TestRosterServiceDefaultsToFirstPage(t *testing.T) {
	repo := &mockRosterRepo{total: 45}
	svc := NewRosterService(repo, 0, nil, nil)

	page, err := svc.List(context.Background(), models.RosterFilter{Page: -2, Search: "  Doe "})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 20, page.Pagination.PageSize)
	assert.Len(t, page.Items, 20)
	assert.Equal(t, "Doe", repo.lastSearch)
	assert.Equal(t, "Doe", page.Search)
	assert.True(t, page.Pagination.HasNext)
}

func TestRosterServiceEmptyResultSkipsListQuery(t *testing.T) {
	repo := &mockRosterRepo{}
	svc := NewRosterService(repo, 20, NewMetricsService(), zap.NewNop())

	page, err := svc.List(context.Background(), models.RosterFilter{Page: 4, Search: "nobody"})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.Pagination.Page)
	assert.Equal(t, 0, page.Pagination.TotalPages)
	assert.Zero(t, repo.listCalls)
}

func TestRosterServiceCountError(t *testing.T) {
	repo := &mockRosterRepo{countErr: errors.New("boom")}
	svc := NewRosterService(repo, 20, nil, nil)

	_, err := svc.List(context.Background(), models.RosterFilter{})
	require.Error(t, err)
}
