package study

import (
	"context"
	"errors"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/core/agent/llm"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"

	json "github.com/goccy/go-json"
)

// maxChatTitleLen caps the stored chat title.
const maxChatTitleLen = 100

// ChatService runs study assistant conversations.
type ChatService struct {
	fast     out.LLM
	users    out.UserRepository
	profiles out.ProfileRepository
	chats    out.ChatRepository
}

// NewChatService creates a ChatService.
func NewChatService(fast out.LLM, users out.UserRepository, profiles out.ProfileRepository, chats out.ChatRepository) *ChatService {
	return &ChatService{fast: fast, users: users, profiles: profiles, chats: chats}
}

// Chat handles a turn for an authenticated user. When save_chat is set
// the session is persisted instead of calling the model.
func (s *ChatService) Chat(ctx context.Context, userID int64, input domain.ChatInput) (*domain.ChatResult, *domain.Chat, error) {
	if input.SaveChat {
		chat, err := s.saveChat(ctx, userID, input)
		return nil, chat, err
	}

	details, err := s.userDetails(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	history, err := json.Marshal(input.ChatHistory)
	if err != nil {
		return nil, nil, apperr.BadRequest("Chat Data is not valid JSON")
	}

	systemPrompt := llm.ChatSystemPrompt(string(history), details)
	reply, err := s.fast.CompleteWithSystem(ctx, systemPrompt, input.Query)
	if err != nil {
		return nil, nil, apperr.LLMError(err)
	}

	return appendTurn(input, reply), nil, nil
}

// PublicChat handles a turn without any user context.
func (s *ChatService) PublicChat(ctx context.Context, input domain.ChatInput) (*domain.ChatResult, error) {
	history, err := json.Marshal(input.ChatHistory)
	if err != nil {
		return nil, apperr.BadRequest("Chat Data is not valid JSON")
	}

	systemPrompt := llm.PublicChatSystemPrompt(string(history))
	reply, err := s.fast.CompleteWithSystem(ctx, systemPrompt, input.Query)
	if err != nil {
		return nil, apperr.LLMError(err)
	}

	return appendTurn(input, reply), nil
}

// List returns the user's saved chats.
func (s *ChatService) List(ctx context.Context, userID int64, limit, offset int) ([]*domain.Chat, error) {
	chats, err := s.chats.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return nil, apperr.NotFound("chats")
	}
	return chats, nil
}

func (s *ChatService) saveChat(ctx context.Context, userID int64, input domain.ChatInput) (*domain.Chat, error) {
	data, err := json.Marshal(map[string]any{
		"chat_history": input.ChatHistory,
		"query":        input.Query,
		"save_chat":    input.SaveChat,
	})
	if err != nil {
		return nil, apperr.BadRequest("Chat Data is not valid JSON")
	}

	chat := &domain.Chat{
		UserID: userID,
		Title:  chatTitle(input),
		Data:   data,
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// chatTitle derives the title from the first user turn, falling back to
// the current query.
func chatTitle(input domain.ChatInput) string {
	title := input.Query
	if len(input.ChatHistory) > 0 {
		if first, ok := input.ChatHistory[0]["user"]; ok && first != "" {
			title = first
		}
	}
	if len(title) > maxChatTitleLen {
		title = title[:maxChatTitleLen]
	}
	return title
}

// userDetails serializes the user and profile for prompt context.
func (s *ChatService) userDetails(ctx context.Context, userID int64) (string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return "", apperr.NotFound("user")
		}
		return "", err
	}

	details := map[string]any{"user": user}
	if profile, err := s.profiles.GetByUserID(ctx, userID); err == nil {
		details["profile"] = profile
	}

	encoded, err := json.Marshal(details)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func appendTurn(input domain.ChatInput, reply string) *domain.ChatResult {
	history := make([]map[string]string, 0, len(input.ChatHistory)+1)
	history = append(history, input.ChatHistory...)
	history = append(history, map[string]string{
		"system": reply,
		"user":   input.Query,
	})

	return &domain.ChatResult{
		ChatHistory: history,
		Query:       input.Query,
		SaveChat:    false,
	}
}
