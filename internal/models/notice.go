package models

import "time"

// Notice is an announcement shown most recent first.
type Notice struct {
	ID           string    `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Body         string    `db:"body" json:"body"`
	PostDateTime time.Time `db:"post_date_time" json:"post_date_time"`
}
