package domain

import "time"

// Goal is an AI-generated study plan stored against a user.
type Goal struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Data        []byte    `json:"data" db:"data"`
	CreatedDate time.Time `json:"created_date" db:"created_date"`
}

// Resource is a saved study resource, either an AI book list or a
// YouTube search result set.
type Resource struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	Data         []byte    `json:"data" db:"data"`
	ResourceType string    `json:"resource_type" db:"resource_type"`
	CreatedDate  time.Time `json:"created_date" db:"created_date"`
}

// Resource type values.
const (
	ResourceTypeBook    = "book"
	ResourceTypeYouTube = "youtube"
)

// Chat is a saved chat session.
type Chat struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Title       string    `json:"chat_title" db:"chat_title"`
	Data        []byte    `json:"data" db:"data"`
	CreatedDate time.Time `json:"created_date" db:"created_date"`
}

// ChatMessage is a single turn in a chat history.
type ChatMessage struct {
	System string `json:"system,omitempty"`
	User   string `json:"user,omitempty"`
}

// ChatInput is the request payload for a chat turn.
type ChatInput struct {
	ChatHistory []map[string]string `json:"chat_history"`
	Query       string              `json:"query"`
	SaveChat    bool                `json:"save_chat"`
}

// ChatResult is the response for an unsaved chat turn.
type ChatResult struct {
	ChatHistory []map[string]string `json:"chat_history"`
	Query       string              `json:"query"`
	SaveChat    bool                `json:"save_chat"`
}
