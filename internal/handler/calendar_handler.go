package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/pkg/response"
)

type calendarService interface {
	Events(ctx context.Context) ([]models.CalendarEntry, error)
	Schedule(ctx context.Context, actor models.Actor) ([]models.CalendarEntry, error)
}

// CalendarHandler feeds calendar widgets. Both endpoints answer with a bare
// JSON array instead of the envelope.
type CalendarHandler struct {
	calendar calendarService
}

// NewCalendarHandler constructs CalendarHandler.
func NewCalendarHandler(calendar calendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// Events godoc
// @Summary School events
// @Tags Calendar
// @Produce json
// @Success 200 {array} models.CalendarEntry
// @Router /calendar/events [get]
func (h *CalendarHandler) Events(c *gin.Context) {
	entries, err := h.calendar.Events(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Schedule godoc
// @Summary Today's lessons of the signed in student
// @Tags Calendar
// @Produce json
// @Success 200 {array} models.CalendarEntry
// @Router /calendar/schedule [get]
func (h *CalendarHandler) Schedule(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	entries, err := h.calendar.Schedule(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
