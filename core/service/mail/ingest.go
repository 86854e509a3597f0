package mail

import (
	"context"
	"errors"
	"time"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"

	"github.com/sony/gobreaker"
)

// Summarizer rewrites an email body in plain English.
type Summarizer interface {
	SummarizeEmail(ctx context.Context, emailBody string) (string, error)
}

// IngestService turns Gmail push notifications into stored emails and
// summaries.
type IngestService struct {
	tokens     TokenSource
	provider   out.MailProvider
	emails     out.EmailRepository
	summaries  out.SummaryRepository
	summarizer Summarizer
	breaker    *gobreaker.CircuitBreaker
}

// NewIngestService creates an IngestService. The circuit breaker guards
// the summarization call so a degraded LLM cannot stall ingestion.
func NewIngestService(tokens TokenSource, provider out.MailProvider, emails out.EmailRepository, summaries out.SummaryRepository, summarizer Summarizer) *IngestService {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "llm-summarize",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &IngestService{
		tokens:     tokens,
		provider:   provider,
		emails:     emails,
		summaries:  summaries,
		summarizer: summarizer,
		breaker:    breaker,
	}
}

// HandleNotification processes one push notification. Duplicate
// deliveries and concurrent races resolve to a no-op rather than an
// error, so Pub/Sub retries stay harmless.
func (s *IngestService) HandleNotification(ctx context.Context, notification domain.PushNotification) error {
	if notification.EmailAddress == "" {
		return apperr.MalformedNotification("missing emailAddress")
	}
	if notification.HistoryID == 0 {
		return apperr.MalformedNotification("missing historyId")
	}

	userID, err := s.tokens.ResolveUserByGoogleEmail(ctx, notification.EmailAddress)
	if err != nil {
		return err
	}

	token, err := s.tokens.GetValidAccessToken(ctx, userID)
	if err != nil {
		return err
	}

	messageID, err := s.provider.LatestMessageID(ctx, token)
	if err != nil {
		return err
	}
	if messageID == "" {
		logger.Debug("Notification for user %d with empty inbox", userID)
		return nil
	}

	exists, err := s.emails.ExistsByMessageID(ctx, userID, messageID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	message, err := s.provider.FetchMessage(ctx, token, messageID)
	if err != nil {
		return err
	}

	email := &domain.Email{
		UserID:    userID,
		MessageID: message.ID,
		ThreadID:  message.ThreadID,
		Sender:    message.From,
		Recipient: message.To,
		Subject:   message.Subject,
		Date:      message.Date,
		Body:      message.Body,
		Raw:       message.Raw,
	}
	if err := s.emails.Create(ctx, email); err != nil {
		// A concurrent delivery won the insert race.
		if errors.Is(err, persistence.ErrDuplicate) {
			return nil
		}
		return err
	}

	return s.summarize(ctx, userID, message)
}

func (s *IngestService) summarize(ctx context.Context, userID int64, message *domain.GmailMessage) error {
	exists, err := s.summaries.ExistsByMessageID(ctx, userID, message.ID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	result, err := s.breaker.Execute(func() (any, error) {
		return s.summarizer.SummarizeEmail(ctx, message.Body)
	})
	if err != nil {
		return apperr.LLMError(err)
	}
	text, _ := result.(string)

	summary := &domain.EmailSummary{
		UserID:    userID,
		MessageID: message.ID,
		Summary:   text,
	}
	if err := s.summaries.Create(ctx, summary); err != nil {
		if errors.Is(err, persistence.ErrDuplicate) {
			return nil
		}
		return err
	}

	logger.Info("Ingested message %s for user %d", message.ID, userID)
	return nil
}
