package study

import (
	"context"
	"strings"
	"testing"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"

	json "github.com/goccy/go-json"
)

type fakeLLM struct {
	response string
	err      error
	lastSys  string
	lastUser string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.lastUser = prompt
	return f.response, f.err
}

func (f *fakeLLM) CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSys, f.lastUser = systemPrompt, userPrompt
	return f.response, f.err
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.lastSys, f.lastUser = systemPrompt, userPrompt
	return f.response, f.err
}

type fakeGoals struct {
	created []*domain.Goal
}

func (f *fakeGoals) Create(ctx context.Context, goal *domain.Goal) error {
	goal.ID = int64(len(f.created) + 1)
	f.created = append(f.created, goal)
	return nil
}

func (f *fakeGoals) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Goal, error) {
	return f.created, nil
}

type fakeResources struct {
	created []*domain.Resource
}

func (f *fakeResources) Create(ctx context.Context, resource *domain.Resource) error {
	resource.ID = int64(len(f.created) + 1)
	f.created = append(f.created, resource)
	return nil
}

func (f *fakeResources) ListByUserID(ctx context.Context, userID int64, resourceType string, limit, offset int) ([]*domain.Resource, error) {
	return f.created, nil
}

type fakeChats struct {
	created []*domain.Chat
}

func (f *fakeChats) Create(ctx context.Context, chat *domain.Chat) error {
	chat.ID = int64(len(f.created) + 1)
	f.created = append(f.created, chat)
	return nil
}

func (f *fakeChats) ListByUserID(ctx context.Context, userID int64, limit, offset int) ([]*domain.Chat, error) {
	return f.created, nil
}

type fakeUsers struct {
	user *domain.User
}

func (f *fakeUsers) Create(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUsers) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, persistence.ErrNotFound
}
func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, persistence.ErrNotFound
}
func (f *fakeUsers) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return nil, nil
}
func (f *fakeUsers) Update(ctx context.Context, user *domain.User) error { return nil }
func (f *fakeUsers) Delete(ctx context.Context, id int64) error          { return nil }

type fakeProfiles struct {
	profile *domain.Profile
}

func (f *fakeProfiles) Create(ctx context.Context, profile *domain.Profile) error { return nil }
func (f *fakeProfiles) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	if f.profile != nil && f.profile.UserID == userID {
		return f.profile, nil
	}
	return nil, persistence.ErrNotFound
}
func (f *fakeProfiles) List(ctx context.Context, limit, offset int) ([]*domain.Profile, error) {
	return nil, nil
}
func (f *fakeProfiles) Update(ctx context.Context, profile *domain.Profile) error { return nil }
func (f *fakeProfiles) DeleteByUserID(ctx context.Context, userID int64) error    { return nil }

type fakeVideos struct {
	results []out.VideoResult
	err     error
	query   string
}

func (f *fakeVideos) Search(ctx context.Context, query string, maxResults int64) ([]out.VideoResult, error) {
	f.query = query
	return f.results, f.err
}

func TestGoalGenerate(t *testing.T) {
	planner := &fakeLLM{response: `{
		"title": "Prepare for NEET",
		"description": "Biology first",
		"todos": [{"title": "Revise cell biology"}]
	}`}
	goals := &fakeGoals{}
	svc := NewGoalService(planner, goals)

	goal, err := svc.Generate(context.Background(), 1, "NEET")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if goal.UserID != 1 {
		t.Errorf("unexpected user id %d", goal.UserID)
	}
	if len(goals.created) != 1 {
		t.Fatalf("expected one persisted goal, got %d", len(goals.created))
	}

	var payload map[string]any
	if err := json.Unmarshal(goal.Data, &payload); err != nil {
		t.Fatalf("stored goal is not JSON: %v", err)
	}
	if payload["title"] != "Prepare for NEET" {
		t.Errorf("unexpected stored title %v", payload["title"])
	}
	if !strings.Contains(planner.lastUser, "NEET") {
		t.Error("prompt should carry the exam name")
	}
}

func TestGoalGenerateRejectsInvalidOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"prose", "Here is your study plan: 1. study hard"},
		{"missing todos", `{"title": "Prepare"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals := &fakeGoals{}
			svc := NewGoalService(&fakeLLM{response: tt.response}, goals)

			_, err := svc.Generate(context.Background(), 1, "NEET")
			if !apperr.IsCode(err, apperr.CodeBadRequest) {
				t.Errorf("expected bad request, got %v", err)
			}
			if len(goals.created) != 0 {
				t.Error("invalid output must not be persisted")
			}
		})
	}
}

func TestGenerateBooks(t *testing.T) {
	book := `{"Book_name": "Concepts of Physics", "Year_of_publication": "2022", "source": "", "Publisher": "", "Authors": "H.C. Verma", "ISBN": "978-1"}`
	fast := &fakeLLM{response: `{
		"topic": "JEE",
		"recommended_books": [{"category": "Physics", "books": [` + book + `,` + book + `,` + book + `]}]
	}`}
	resources := &fakeResources{}
	svc := NewResourceService(fast, &fakeVideos{}, resources)

	resource, err := svc.GenerateBooks(context.Background(), 2, "JEE")
	if err != nil {
		t.Fatalf("GenerateBooks: %v", err)
	}
	if resource.ResourceType != domain.ResourceTypeBook {
		t.Errorf("unexpected resource type %q", resource.ResourceType)
	}
	if len(resources.created) != 1 {
		t.Fatalf("expected one persisted resource, got %d", len(resources.created))
	}
}

func TestGenerateBooksErrorPayload(t *testing.T) {
	fast := &fakeLLM{response: `{"error": "no relevant books found"}`}
	resources := &fakeResources{}
	svc := NewResourceService(fast, &fakeVideos{}, resources)

	_, err := svc.GenerateBooks(context.Background(), 2, "obscure topic")
	if !apperr.IsCode(err, apperr.CodeNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if len(resources.created) != 0 {
		t.Error("error payload must not be persisted")
	}
}

func TestSearchVideos(t *testing.T) {
	videos := &fakeVideos{results: []out.VideoResult{{VideoID: "abc", Title: "Intro"}}}
	svc := NewResourceService(&fakeLLM{}, videos, &fakeResources{})

	results, err := svc.SearchVideos(context.Background(), "computer networks")
	if err != nil {
		t.Fatalf("SearchVideos: %v", err)
	}
	if len(results) != 1 || results[0].VideoID != "abc" {
		t.Errorf("unexpected results %v", results)
	}
	if videos.query != "computer networks" {
		t.Errorf("search used wrong query %q", videos.query)
	}
}

func TestChatAppendsTurn(t *testing.T) {
	fast := &fakeLLM{response: "Read this first: chapter one."}
	svc := NewChatService(fast,
		&fakeUsers{user: &domain.User{ID: 1, FullName: "Test Student"}},
		&fakeProfiles{},
		&fakeChats{},
	)

	result, saved, err := svc.Chat(context.Background(), 1, domain.ChatInput{
		ChatHistory: []map[string]string{{"system": "Hi", "user": "Hello"}},
		Query:       "How do I study OSI layers?",
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if saved != nil {
		t.Error("non-save turn must not persist a chat")
	}
	if len(result.ChatHistory) != 2 {
		t.Fatalf("expected appended history, got %d entries", len(result.ChatHistory))
	}
	last := result.ChatHistory[1]
	if last["system"] != "Read this first: chapter one." || last["user"] != "How do I study OSI layers?" {
		t.Errorf("unexpected final turn %v", last)
	}
	if result.SaveChat {
		t.Error("save_chat must be false in the reply")
	}
	if !strings.Contains(fast.lastSys, "Test Student") {
		t.Error("system prompt should include user details")
	}
}

func TestChatSave(t *testing.T) {
	chats := &fakeChats{}
	fast := &fakeLLM{}
	svc := NewChatService(fast, &fakeUsers{user: &domain.User{ID: 1}}, &fakeProfiles{}, chats)

	longQuery := strings.Repeat("q", 150)
	_, saved, err := svc.Chat(context.Background(), 1, domain.ChatInput{
		Query:    longQuery,
		SaveChat: true,
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if saved == nil {
		t.Fatal("expected a persisted chat")
	}
	if len(saved.Title) != maxChatTitleLen {
		t.Errorf("title not truncated, length %d", len(saved.Title))
	}
	if fast.lastSys != "" {
		t.Error("save turn must not call the model")
	}

	// Title prefers the first user turn when history is present.
	_, saved, err = svc.Chat(context.Background(), 1, domain.ChatInput{
		ChatHistory: []map[string]string{{"user": "first question"}},
		Query:       "latest question",
		SaveChat:    true,
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if saved.Title != "first question" {
		t.Errorf("expected title from first turn, got %q", saved.Title)
	}
}

func TestPublicChatOmitsUserDetails(t *testing.T) {
	fast := &fakeLLM{response: "Revise daily."}
	svc := NewChatService(fast, &fakeUsers{}, &fakeProfiles{}, &fakeChats{})

	result, err := svc.PublicChat(context.Background(), domain.ChatInput{Query: "Help me revise"})
	if err != nil {
		t.Fatalf("PublicChat: %v", err)
	}
	if strings.Contains(fast.lastSys, "User details") {
		t.Error("public chat must not include user details")
	}
	if len(result.ChatHistory) != 1 {
		t.Errorf("expected one turn, got %d", len(result.ChatHistory))
	}
}
