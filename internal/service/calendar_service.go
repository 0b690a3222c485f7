package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/eschool-api/internal/models"
)

const (
	eventsCacheKey     = "calendar:events"
	calendarDateLayout = "2006-01-02"
	scheduleLayout     = "2006-01-02 15:04"
)

type eventStore interface {
	List(ctx context.Context) ([]models.Event, error)
}

// CalendarService renders events and the daily class schedule for calendar widgets.
type CalendarService struct {
	events    eventStore
	students  studentDirectory
	classes   classFinder
	offerings offeringStore
	cache     *CacheService
	cacheTTL  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// NewCalendarService constructs a CalendarService.
func NewCalendarService(events eventStore, students studentDirectory, classes classFinder, offerings offeringStore, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *CalendarService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalendarService{
		events:    events,
		students:  students,
		classes:   classes,
		offerings: offerings,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// Events returns every event as a calendar entry. End is nil when the event has no end date.
func (s *CalendarService) Events(ctx context.Context) ([]models.CalendarEntry, error) {
	var cached []models.CalendarEntry
	if s.cache.Get(ctx, eventsCacheKey, &cached) {
		return cached, nil
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to load events")
	}
	entries := make([]models.CalendarEntry, 0, len(events))
	for _, e := range events {
		entry := models.CalendarEntry{
			ID:    e.ID,
			Title: e.Title,
			Start: e.StartDate.Format(calendarDateLayout),
		}
		if e.Description != nil {
			entry.Description = *e.Description
		}
		if e.EndDate != nil {
			end := e.EndDate.Format(calendarDateLayout)
			entry.End = &end
		}
		entries = append(entries, entry)
	}
	s.cache.Set(ctx, eventsCacheKey, entries, s.cacheTTL)
	return entries, nil
}

// Schedule places the offerings of the student's class on today's date.
func (s *CalendarService) Schedule(ctx context.Context, actor models.Actor) ([]models.CalendarEntry, error) {
	if actor.Role != models.RoleStudent || actor.ProfileID == "" {
		return []models.CalendarEntry{}, nil
	}
	student, err := s.students.FindByID(ctx, actor.ProfileID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	offerings, err := s.offerings.ListByClass(ctx, student.ClassID)
	if err != nil {
		return nil, internalError(err, "failed to load subjects")
	}

	today := s.now()
	entries := make([]models.CalendarEntry, 0, len(offerings))
	for _, o := range offerings {
		end := onDay(today, o.EndTime).Format(scheduleLayout)
		entries = append(entries, models.CalendarEntry{
			ID:    o.ID,
			Title: fmt.Sprintf("%s-%s", o.ClassName, o.SubjectName),
			Start: onDay(today, o.StartTime).Format(scheduleLayout),
			End:   &end,
		})
	}
	return entries, nil
}

// onDay combines the date of day with the clock time of t.
func onDay(day, t time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
