package http

import (
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/service/study"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ChatHandler serves the study assistant chat.
type ChatHandler struct {
	chatService *study.ChatService
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(chatService *study.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Register mounts the authenticated chat routes.
func (h *ChatHandler) Register(router fiber.Router) {
	group := router.Group("/chat")
	group.Post("/", h.Chat)
	group.Get("/", h.List)
}

// RegisterPublic mounts the unauthenticated chat route.
func (h *ChatHandler) RegisterPublic(router fiber.Router) {
	router.Post("/chat/public", h.PublicChat)
}

// Chat answers a query with the user's details in context, or persists
// the conversation when save_chat is set.
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.ChatInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if input.Query == "" && !input.SaveChat {
		return apperr.MissingField("query")
	}

	result, saved, err := h.chatService.Chat(c.Context(), userID, input)
	if err != nil {
		return err
	}
	if saved != nil {
		return response.Created(c, saved)
	}
	return response.OK(c, result)
}

// List returns the authenticated user's saved chats.
func (h *ChatHandler) List(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	pagination := response.GetPagination(c, 20, 100)
	chats, err := h.chatService.List(c.Context(), userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return err
	}
	return response.OK(c, chats)
}

// PublicChat answers a query without any personalization.
func (h *ChatHandler) PublicChat(c *fiber.Ctx) error {
	var input domain.ChatInput
	if err := c.BodyParser(&input); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if input.Query == "" {
		return apperr.MissingField("query")
	}

	result, err := h.chatService.PublicChat(c.Context(), input)
	if err != nil {
		return err
	}
	return response.OK(c, result)
}
