package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/eschool-api/pkg/errors"
)

func TestExportServiceRosterCSV(t *testing.T) {
	repo := &mockRosterRepo{total: 3}
	svc := NewExportService(repo, 2, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }

	file, err := svc.Roster(context.Background(), "  Doe ", "")
	require.NoError(t, err)
	assert.Equal(t, "roster-20240309.csv", file.Filename)
	assert.Contains(t, file.ContentType, "text/csv")
	assert.Contains(t, string(file.Body), "Username,First Name,Middle Name,Last Name")
	assert.Equal(t, "Doe", repo.lastSearch)
	assert.Equal(t, 2, repo.lastLimit)
	assert.Equal(t, 0, repo.lastOffset)
}

func TestExportServiceRosterPDF(t *testing.T) {
	svc := NewExportService(&mockRosterRepo{total: 1}, 0, nil)

	file, err := svc.Roster(context.Background(), "", "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, len(file.Body) > 4)
	assert.Equal(t, "%PDF", string(file.Body[:4]))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&mockRosterRepo{}, 0, nil)

	_, err := svc.Roster(context.Background(), "", "xlsx")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Contains(t, appErr.Fields, "format")
}
