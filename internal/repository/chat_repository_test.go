package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eschool-api/internal/models"
)

func TestChatRepositoryCreateAssignsIdentity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewChatRepository(db)

	mock.ExpectExec("INSERT INTO chats").WillReturnResult(sqlmock.NewResult(1, 1))

	msg := &models.ChatMessage{FromID: "a1", ToID: "a2", Body: "hello"}
	require.NoError(t, repo.Create(context.Background(), msg))
	assert.NotEmpty(t, msg.ID)
	assert.False(t, msg.SendDate.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestChatRepositoryInboxLimit(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewChatRepository(db)

	rows := sqlmock.NewRows([]string{"id", "from_id", "to_id", "body", "send_date", "from_username"}).
		AddRow("m1", "a2", "a1", "hi", time.Now(), "teach")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ch.to_id = $1 ORDER BY ch.send_date DESC, ch.id LIMIT 10")).
		WithArgs("a1").
		WillReturnRows(rows)

	messages, err := repo.Inbox(context.Background(), "a1", 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "teach", messages[0].FromUsername)
	assert.NoError(t, mock.ExpectationsWereMet())
}
