package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
	"github.com/noah-isme/eschool-api/pkg/export"
)

var rosterExportHeaders = []string{"Username", "First Name", "Middle Name", "Last Name", "Gender", "Date of Birth", "National ID", "Class"}

// ExportFile is a rendered export ready to stream.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders the filtered roster into downloadable documents.
type ExportService struct {
	roster    rosterRepository
	renderers map[string]export.Renderer
	maxRows   int
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an export service with CSV and PDF renderers.
func NewExportService(roster rosterRepository, maxRows int, logger *zap.Logger) *ExportService {
	if maxRows <= 0 {
		maxRows = 5000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		roster: roster,
		renderers: map[string]export.Renderer{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
		maxRows: maxRows,
		logger:  logger,
		now:     time.Now,
	}
}

// Roster renders every roster entry matching search, in roster order, up to the row cap.
func (s *ExportService) Roster(ctx context.Context, search, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Field("format", "must be one of csv, pdf")
	}

	entries, err := s.roster.ListRoster(ctx, strings.TrimSpace(search), s.maxRows, 0)
	if err != nil {
		return nil, internalError(err, "failed to load roster")
	}

	rows := make([]map[string]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]string{
			"Username":      e.Username,
			"First Name":    e.FirstName,
			"Middle Name":   e.MidName,
			"Last Name":     e.LastName,
			"Gender":        string(e.Gender),
			"Date of Birth": e.DateOfBirth.Format("2006-01-02"),
			"National ID":   e.NationalID,
			"Class":         e.ClassName,
		})
	}
	body, err := renderer.Render(export.Dataset{Title: "Student Roster", Headers: rosterExportHeaders, Rows: rows})
	if err != nil {
		return nil, internalError(err, "failed to render roster")
	}
	if len(entries) == s.maxRows {
		s.logger.Warn("roster export truncated", zap.Int("max_rows", s.maxRows))
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("roster-%s.%s", s.now().Format("20060102"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}
