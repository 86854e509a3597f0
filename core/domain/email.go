package domain

import "time"

// Email is an ingested Gmail message stored for a user.
type Email struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	MessageID string    `json:"message_id" db:"message_id"`
	ThreadID  string    `json:"thread_id" db:"thread_id"`
	Sender    string    `json:"sender" db:"sender"`
	Recipient string    `json:"recipient" db:"recipient"`
	Subject   string    `json:"subject" db:"subject"`
	Date      string    `json:"date" db:"date"`
	Body      string    `json:"body" db:"body"`
	Raw       []byte    `json:"-" db:"raw"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// EmailSummary is the LLM-simplified rendition of an ingested email.
type EmailSummary struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	MessageID   string    `json:"message_id" db:"message_id"`
	Summary     string    `json:"summary" db:"summary"`
	CreatedDate time.Time `json:"created_date" db:"created_date"`
}
