package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eschool-api/internal/middleware"
	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/internal/service"
	"github.com/noah-isme/eschool-api/pkg/response"
)

type rosterService interface {
	List(ctx context.Context, filter models.RosterFilter) (*models.RosterPage, error)
}

type rosterExporter interface {
	Roster(ctx context.Context, search, format string) (*service.ExportFile, error)
}

// RosterHandler serves the paginated student roster and its exports.
type RosterHandler struct {
	roster   rosterService
	exporter rosterExporter
}

// NewRosterHandler constructs RosterHandler.
func NewRosterHandler(roster rosterService, exporter rosterExporter) *RosterHandler {
	return &RosterHandler{roster: roster, exporter: exporter}
}

// List godoc
// @Summary List students
// @Description Matching is case-sensitive: first and last name by substring, username, national ID and class name by prefix.
// @Tags Students
// @Produce json
// @Param search query string false "Search term"
// @Param page query int false "Page"
// @Success 200 {object} response.Envelope
// @Router /admin/students [get]
func (h *RosterHandler) List(c *gin.Context) {
	filter := models.RosterFilter{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
	}

	page, err := h.roster.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetMeta(c, "search", page.Search)
	response.JSON(c, http.StatusOK, page.Items, &page.Pagination, middleware.ResponseMeta(c))
}

// Export godoc
// @Summary Export students
// @Tags Students
// @Produce text/csv
// @Produce application/pdf
// @Param search query string false "Search term"
// @Param format query string false "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /admin/students/export [get]
func (h *RosterHandler) Export(c *gin.Context) {
	file, err := h.exporter.Roster(c.Request.Context(), c.Query("search"), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}
