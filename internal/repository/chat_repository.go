package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eschool-api/internal/models"
)

const chatSelect = `SELECT ch.id, ch.from_id, ch.to_id, ch.body, ch.send_date, a.username AS from_username
        FROM chats ch JOIN accounts a ON a.id = ch.from_id`

// ChatRepository persists chat messages.
type ChatRepository struct {
	db *sqlx.DB
}

// NewChatRepository constructs a ChatRepository.
func NewChatRepository(db *sqlx.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create stores a new message.
func (r *ChatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.SendDate.IsZero() {
		msg.SendDate = time.Now().UTC()
	}
	const query = `INSERT INTO chats (id, from_id, to_id, body, send_date) VALUES (:id, :from_id, :to_id, :body, :send_date)`
	if _, err := r.db.NamedExecContext(ctx, query, msg); err != nil {
		return fmt.Errorf("create chat: %w", err)
	}
	return nil
}

// Inbox returns messages addressed to the account, newest first. A limit of
// zero returns every message.
func (r *ChatRepository) Inbox(ctx context.Context, accountID string, limit int) ([]models.ChatView, error) {
	query := chatSelect + " WHERE ch.to_id = $1 ORDER BY ch.send_date DESC, ch.id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	messages := []models.ChatView{}
	if err := r.db.SelectContext(ctx, &messages, query, accountID); err != nil {
		return nil, fmt.Errorf("list inbox: %w", err)
	}
	return messages, nil
}

// FindByID fetches a message by ID.
func (r *ChatRepository) FindByID(ctx context.Context, id string) (*models.ChatView, error) {
	var msg models.ChatView
	if err := r.db.GetContext(ctx, &msg, chatSelect+" WHERE ch.id = $1", id); err != nil {
		return nil, err
	}
	return &msg, nil
}
