package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewDashboardRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("(SELECT COUNT(*) FROM students WHERE gender = 'F') AS female")).
		WillReturnRows(sqlmock.NewRows([]string{"students", "parents", "teachers", "classes", "male", "female"}).AddRow(40, 30, 8, 4, 22, 18))

	counts, err := repo.Counts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40, counts.Students)
	assert.Equal(t, 18, counts.Female)
	assert.NoError(t, mock.ExpectationsWereMet())
}
