package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-api/internal/models"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
)

type memoryCache struct {
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

type mockEventRepo struct {
	events []models.Event
	calls  int
}

func (m *mockEventRepo) List(ctx context.Context) ([]models.Event, error) {
	m.calls++
	return m.events, nil
}

func TestCalendarServiceEventsFormatAndCache(t *testing.T) {
	end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	events := &mockEventRepo{events: []models.Event{
		{ID: "e1", Title: "Exams", Description: strPtr("finals"), StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), EndDate: &end},
		{ID: "e2", Title: "Holiday", StartDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
	}}
	metrics := NewMetricsService()
	cache := NewCacheService(newMemoryCache(), metrics, time.Minute, nil, true)
	svc := NewCalendarService(events, &mockStudentRepo{}, &mockClassRepo{}, &mockOfferingRepo{}, cache, time.Minute, nil)

	entries, err := svc.Events(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-06-01", entries[0].Start)
	require.NotNil(t, entries[0].End)
	assert.Equal(t, "2024-06-03", *entries[0].End)
	assert.Equal(t, "finals", entries[0].Description)
	assert.Nil(t, entries[1].End)
	assert.Equal(t, "", entries[1].Description)

	again, err := svc.Events(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries, again)
	assert.Equal(t, 1, events.calls)
	assert.Equal(t, uint64(1), metrics.Snapshot().CacheHits)
}

func TestCalendarServiceEventsWithoutCache(t *testing.T) {
	events := &mockEventRepo{}
	svc := NewCalendarService(events, &mockStudentRepo{}, &mockClassRepo{}, &mockOfferingRepo{}, nil, 0, nil)

	entries, err := svc.Events(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	_, _ = svc.Events(context.Background())
	assert.Equal(t, 2, events.calls)
}

func TestCalendarServiceScheduleForToday(t *testing.T) {
	students := &mockStudentRepo{profiles: map[string]*models.StudentProfile{
		"s1": {Student: models.Student{ID: "s1", ClassID: "c1"}},
	}}
	clock := func(h, m int) time.Time { return time.Date(0, 1, 1, h, m, 0, 0, time.UTC) }
	offerings := &mockOfferingRepo{offerings: []models.OfferingView{
		{SubjectOffering: models.SubjectOffering{ID: "o1", ClassID: "c1", StartTime: clock(8, 0), EndTime: clock(9, 30)}, ClassName: "10A", SubjectName: "Math"},
		{SubjectOffering: models.SubjectOffering{ID: "o2", ClassID: "c2", StartTime: clock(8, 0), EndTime: clock(9, 0)}, ClassName: "10B", SubjectName: "Art"},
	}}
	svc := NewCalendarService(&mockEventRepo{}, students, &mockClassRepo{}, offerings, nil, 0, nil)
	svc.now = func() time.Time { return time.Date(2024, 9, 2, 14, 0, 0, 0, time.UTC) }

	entries, err := svc.Schedule(context.Background(), models.Actor{AccountID: "a1", Role: models.RoleStudent, ProfileID: "s1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "10A-Math", entries[0].Title)
	assert.Equal(t, "2024-09-02 08:00", entries[0].Start)
	assert.Equal(t, "2024-09-02 09:30", *entries[0].End)
}

func TestCalendarServiceScheduleNonStudentEmpty(t *testing.T) {
	svc := NewCalendarService(&mockEventRepo{}, &mockStudentRepo{}, &mockClassRepo{}, &mockOfferingRepo{}, nil, 0, nil)

	entries, err := svc.Schedule(context.Background(), models.Actor{AccountID: "a1", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
