package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-api/internal/models"
)

type stubPersonSearch struct {
	hits  []models.PersonSummary
	err   error
	calls int
	limit int
}

func (s *stubPersonSearch) Search(ctx context.Context, term string, limit int) ([]models.PersonSummary, error) {
	s.calls++
	s.limit = limit
	return s.hits, s.err
}

type stubOfferingSearch struct {
	hits []models.OfferingView
}

func (s *stubOfferingSearch) Search(ctx context.Context, term string, limit int) ([]models.OfferingView, error) {
	return s.hits, nil
}

func TestSearchServiceBlankTerm(t *testing.T) {
	students := &stubPersonSearch{}
	svc := NewSearchService(students, &stubPersonSearch{}, &stubPersonSearch{}, &stubOfferingSearch{}, 0, nil)

	result, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.NotNil(t, result.Students)
	assert.Empty(t, result.Students)
	assert.Empty(t, result.Teachers)
	assert.Empty(t, result.Parents)
	assert.Empty(t, result.Offerings)
	assert.Zero(t, students.calls)
}

func TestSearchServiceFansOut(t *testing.T) {
	students := &stubPersonSearch{hits: []models.PersonSummary{{ID: "s1"}}}
	teachers := &stubPersonSearch{hits: []models.PersonSummary{{ID: "t1"}, {ID: "t2"}}}
	parents := &stubPersonSearch{hits: []models.PersonSummary{}}
	offerings := &stubOfferingSearch{hits: []models.OfferingView{{ClassName: "10A", SubjectName: "Math"}}}
	svc := NewSearchService(students, teachers, parents, offerings, 0, nil)

	result, err := svc.Search(context.Background(), "10")
	require.NoError(t, err)
	assert.Len(t, result.Students, 1)
	assert.Len(t, result.Teachers, 2)
	assert.Empty(t, result.Parents)
	assert.Len(t, result.Offerings, 1)
	assert.Equal(t, defaultSearchLimit, students.limit)
}

func TestSearchServiceErrorReturnsEmptyResult(t *testing.T) {
	failing := &stubPersonSearch{err: errors.New("db down")}
	svc := NewSearchService(&stubPersonSearch{}, failing, &stubPersonSearch{}, &stubOfferingSearch{}, 10, nil)

	result, err := svc.Search(context.Background(), "19")
	require.Error(t, err)
	assert.Empty(t, result.Students)
}
