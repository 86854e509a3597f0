package http

import (
	"github.com/kisxo/SikshaSathi-Backend/core/service/mail"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultMailResults = 5
	maxMailResults     = 25
)

// MailHandler serves Gmail reads, watch registration, and stored
// summaries.
type MailHandler struct {
	mailService *mail.Service
}

// NewMailHandler creates a MailHandler.
func NewMailHandler(mailService *mail.Service) *MailHandler {
	return &MailHandler{mailService: mailService}
}

// Register mounts the mail routes.
func (h *MailHandler) Register(router fiber.Router) {
	group := router.Group("/mails")
	group.Get("/me", h.ListMessages)
	group.Post("/watch", h.StartWatch)
	group.Get("/summaries", h.ListSummaries)
	group.Delete("/summaries/:id", h.DeleteSummary)
}

// ListMessages fetches recent inbox messages live from Gmail.
func (h *MailHandler) ListMessages(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	maxResults := c.QueryInt("max_results", defaultMailResults)
	if maxResults < 1 {
		maxResults = defaultMailResults
	}
	if maxResults > maxMailResults {
		maxResults = maxMailResults
	}

	messages, err := h.mailService.ListMessages(c.Context(), userID, int64(maxResults))
	if err != nil {
		return err
	}
	return response.OK(c, messages)
}

// StartWatch registers a Gmail push watch for the authenticated user.
func (h *MailHandler) StartWatch(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	receipt, err := h.mailService.StartWatch(c.Context(), userID)
	if err != nil {
		return err
	}
	return response.OK(c, receipt)
}

// ListSummaries returns the authenticated user's email summaries.
func (h *MailHandler) ListSummaries(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	pagination := response.GetPagination(c, 20, 100)
	summaries, err := h.mailService.ListSummaries(c.Context(), userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return err
	}
	return response.OK(c, summaries)
}

// DeleteSummary removes one of the authenticated user's summaries.
func (h *MailHandler) DeleteSummary(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	summaryID, err := parseIDParam(c, "id")
	if err != nil {
		return apperr.BadRequest("invalid summary id")
	}

	if err := h.mailService.DeleteSummary(c.Context(), userID, summaryID); err != nil {
		return err
	}
	return response.NoContent(c)
}
