package models

import "time"

// ChatMessage is a directed message; immutable once sent.
type ChatMessage struct {
	ID       string    `db:"id" json:"id"`
	FromID   string    `db:"from_id" json:"from_id"`
	ToID     string    `db:"to_id" json:"to_id"`
	Body     string    `db:"body" json:"body"`
	SendDate time.Time `db:"send_date" json:"send_date"`
}

// ChatView adds the sender's username.
type ChatView struct {
	ChatMessage
	FromUsername string `db:"from_username" json:"from_username"`
}

// SendChatRequest is the compose payload.
type SendChatRequest struct {
	ToID string `json:"to_id" validate:"required"`
	Body string `json:"body" validate:"required,max=4000"`
}
