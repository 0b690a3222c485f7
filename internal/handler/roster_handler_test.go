package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-api/internal/middleware"
	"github.com/noah-isme/eschool-api/internal/models"
	"github.com/noah-isme/eschool-api/internal/service"
	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
)

type fakeRosterSrv struct {
	page   *models.RosterPage
	filter models.RosterFilter
}

func (f *fakeRosterSrv) List(_ context.Context, filter models.RosterFilter) (*models.RosterPage, error) {
	f.filter = filter
	return f.page, nil
}

type fakeExporter struct {
	file   *service.ExportFile
	err    error
	search string
	format string
}

func (f *fakeExporter) Roster(_ context.Context, search, format string) (*service.ExportFile, error) {
	f.search, f.format = search, format
	return f.file, f.err
}

func TestRosterHandlerList(t *testing.T) {
	srv := &fakeRosterSrv{page: &models.RosterPage{
		Items:      []models.RosterEntry{{StudentID: "s1", LastName: "Doe"}},
		Pagination: models.NewPagination(3, 20, 45),
		Search:     "Doe",
	}}
	handler := NewRosterHandler(srv, &fakeExporter{})

	c, rec := newContext(http.MethodGet, "/admin/students?search=Doe&page=3", nil)
	middleware.WithResponseMeta()(c)
	handler.List(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.RosterFilter{Search: "Doe", Page: 3}, srv.filter)
	env := decode(t, rec)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.Page)
	assert.Equal(t, 3, env.Pagination.TotalPages)
	assert.False(t, env.Pagination.HasNext)
	assert.Equal(t, "Doe", env.Meta["search"])
	assert.Contains(t, string(env.Data), `"student_id":"s1"`)
}

func TestRosterHandlerListBadPageDefaultsToFirst(t *testing.T) {
	srv := &fakeRosterSrv{page: &models.RosterPage{Items: []models.RosterEntry{}, Pagination: models.NewPagination(1, 20, 0)}}
	handler := NewRosterHandler(srv, &fakeExporter{})

	c, rec := newContext(http.MethodGet, "/admin/students?page=abc", nil)
	handler.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, srv.filter.Page)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestRosterHandlerExport(t *testing.T) {
	exporter := &fakeExporter{file: &service.ExportFile{Filename: "roster-20240309.csv", ContentType: "text/csv", Body: []byte("Username\njdoe\n")}}
	handler := NewRosterHandler(&fakeRosterSrv{}, exporter)

	c, rec := newContext(http.MethodGet, "/admin/students/export?search=Do", nil)
	handler.Export(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Do", exporter.search)
	assert.Equal(t, "csv", exporter.format)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="roster-20240309.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "Username\njdoe\n", rec.Body.String())
}

func TestRosterHandlerExportUnknownFormat(t *testing.T) {
	exporter := &fakeExporter{err: appErrors.Field("format", "must be one of csv, pdf")}
	handler := NewRosterHandler(&fakeRosterSrv{}, exporter)

	c, rec := newContext(http.MethodGet, "/admin/students/export?format=xlsx", nil)
	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "xlsx", exporter.format)
	assert.Equal(t, "must be one of csv, pdf", decode(t, rec).Error.Fields["format"])
}

