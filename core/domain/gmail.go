package domain

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// GmailMessage is a fetched Gmail message in normalized form.
type GmailMessage struct {
	ID       string `json:"id"`
	ThreadID string `json:"thread_id"`
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Date     string `json:"date"`
	Body     string `json:"body"`
	Raw      []byte `json:"-"`
}

// WatchReceipt is the result of registering a Gmail push subscription.
type WatchReceipt struct {
	HistoryID  uint64 `json:"history_id"`
	Expiration int64  `json:"expiration"`
}

// PushNotification is the decoded payload of a Gmail Pub/Sub push.
type PushNotification struct {
	EmailAddress string `json:"emailAddress"`
	HistoryID    uint64 `json:"historyId"`
}

// UnmarshalJSON accepts historyId as either a JSON number or a quoted
// string. Gmail documents the field as an unsigned integer but push
// payloads carry it as a string.
func (n *PushNotification) UnmarshalJSON(data []byte) error {
	var raw struct {
		EmailAddress string          `json:"emailAddress"`
		HistoryID    json.RawMessage `json:"historyId"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.EmailAddress = raw.EmailAddress
	n.HistoryID = 0

	value := strings.Trim(string(raw.HistoryID), `"`)
	if value == "" || value == "null" {
		return nil
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return err
	}
	n.HistoryID = id
	return nil
}
