package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTruncateBody(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		max      int
		expected string
	}{
		{"short body unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long body truncated", "hello world", 5, "hello..."},
		{"empty body", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncateBody(tt.body, tt.max)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNewClientWithConfigDefaults(t *testing.T) {
	c := NewClientWithConfig(ClientConfig{APIKey: "key"})
	if c.model != DefaultModel {
		t.Errorf("expected default model, got %q", c.model)
	}
	if c.maxTokens != 4096 {
		t.Errorf("expected default max tokens, got %d", c.maxTokens)
	}
}

func TestCompleteSendsSamplingParams(t *testing.T) {
	var captured struct {
		Model       string  `json:"model"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices": [{"message": {"role": "assistant", "content": "ok"}}]}`)
	}))
	defer server.Close()

	c := NewClientWithConfig(ClientConfig{
		APIKey:      "key",
		BaseURL:     server.URL,
		MaxTokens:   256,
		Temperature: 0.2,
	})

	out, err := c.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if out != "ok" {
		t.Errorf("unexpected completion %q", out)
	}
	if captured.MaxTokens != 256 {
		t.Errorf("expected max_tokens 256, got %d", captured.MaxTokens)
	}
	if captured.Temperature != 0.2 {
		t.Errorf("expected temperature 0.2, got %v", captured.Temperature)
	}
}

func TestValidateGoalPayload(t *testing.T) {
	valid := `{
		"title": "Prepare for NEET",
		"description": "Focus on Biology first",
		"todos": [
			{"title": "Revise cell biology", "status": "todo", "checklists": [
				{"item": "Watch lecture", "is_done": false}
			]}
		]
	}`

	payload, err := ValidateGoalPayload(valid)
	if err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if payload["title"] != "Prepare for NEET" {
		t.Errorf("unexpected title %v", payload["title"])
	}

	invalid := []struct {
		name string
		raw  string
	}{
		{"not json", "here is your plan: 1. study"},
		{"missing todos", `{"title": "Prepare"}`},
		{"empty todos", `{"title": "Prepare", "todos": []}`},
		{"todo without title", `{"title": "Prepare", "todos": [{"status": "todo"}]}`},
		{"json array", `[1, 2, 3]`},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateGoalPayload(tt.raw); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateBookPayload(t *testing.T) {
	book := `{"Book_name": "Physics Vol 1", "Year_of_publication": "2023", "source": "", "Publisher": "", "Authors": "A. Verma", "ISBN": "978-1"}`
	valid := `{
		"topic": "JEE",
		"recommended_books": [
			{"category": "Physics", "books": [` + book + `,` + book + `,` + book + `]}
		]
	}`

	if _, err := ValidateBookPayload(valid); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	if _, err := ValidateBookPayload(`{"error": "no relevant books found"}`); err != nil {
		t.Errorf("error object should be accepted: %v", err)
	}

	twoBooks := `{
		"topic": "JEE",
		"recommended_books": [
			{"category": "Physics", "books": [` + book + `,` + book + `]}
		]
	}`
	if _, err := ValidateBookPayload(twoBooks); err == nil {
		t.Error("expected rejection of category with fewer than 3 books")
	}

	if _, err := ValidateBookPayload("not json"); err == nil {
		t.Error("expected rejection of non-JSON output")
	}
}

func TestPromptsCarryTopic(t *testing.T) {
	if !strings.Contains(GoalUserPrompt("NEET"), "to-do list for: NEET") {
		t.Error("goal prompt missing exam name")
	}
	if !strings.Contains(BookUserPrompt("UPSC"), "Topic: UPSC") {
		t.Error("book prompt missing topic")
	}
	if !strings.Contains(ChatSystemPrompt("[]", "{}"), "User details: {}") {
		t.Error("chat prompt missing user details")
	}
	if strings.Contains(PublicChatSystemPrompt("[]"), "User details") {
		t.Error("public chat prompt must not include user details")
	}
}
