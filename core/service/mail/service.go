// Package mail implements Gmail listing, watch registration, and the
// push-triggered ingestion pipeline.
package mail

import (
	"context"
	"errors"

	"github.com/kisxo/SikshaSathi-Backend/adapter/out/persistence"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
)

// TokenSource yields valid Google access tokens and maps notification
// emails to users.
type TokenSource interface {
	GetValidAccessToken(ctx context.Context, userID int64) (string, error)
	ResolveUserByGoogleEmail(ctx context.Context, googleEmail string) (int64, error)
}

// Service exposes mailbox reads, watch registration, and summary
// management.
type Service struct {
	tokens    TokenSource
	provider  out.MailProvider
	summaries out.SummaryRepository
	topicName string
}

// NewService creates a mail Service.
func NewService(tokens TokenSource, provider out.MailProvider, summaries out.SummaryRepository, topicName string) *Service {
	return &Service{
		tokens:    tokens,
		provider:  provider,
		summaries: summaries,
		topicName: topicName,
	}
}

// ListMessages fetches the user's most recent messages in full.
func (s *Service) ListMessages(ctx context.Context, userID int64, maxResults int64) ([]*domain.GmailMessage, error) {
	token, err := s.tokens.GetValidAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	ids, err := s.provider.ListMessageIDs(ctx, token, maxResults)
	if err != nil {
		return nil, err
	}

	// Bounded parallel fetch to avoid Gmail rate limits.
	const maxConcurrency = 5
	type result struct {
		index int
		msg   *domain.GmailMessage
		err   error
	}

	results := make(chan result, len(ids))
	semaphore := make(chan struct{}, maxConcurrency)

	for i, id := range ids {
		go func(idx int, messageID string) {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			msg, err := s.provider.FetchMessage(ctx, token, messageID)
			results <- result{index: idx, msg: msg, err: err}
		}(i, id)
	}

	ordered := make([]*domain.GmailMessage, len(ids))
	for range ids {
		r := <-results
		if r.err == nil {
			ordered[r.index] = r.msg
		}
	}

	messages := make([]*domain.GmailMessage, 0, len(ids))
	for _, msg := range ordered {
		if msg != nil {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}

// StartWatch registers the push subscription for the user's inbox.
func (s *Service) StartWatch(ctx context.Context, userID int64) (*domain.WatchReceipt, error) {
	if s.topicName == "" {
		return nil, apperr.ConfigError("push topic is not configured")
	}

	token, err := s.tokens.GetValidAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.provider.StartWatch(ctx, token, s.topicName)
}

// ListSummaries returns the user's email summaries.
func (s *Service) ListSummaries(ctx context.Context, userID int64, limit, offset int) ([]*domain.EmailSummary, error) {
	summaries, err := s.summaries.ListByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, apperr.NotFound("summaries")
	}
	return summaries, nil
}

// DeleteSummary removes a summary the user owns.
func (s *Service) DeleteSummary(ctx context.Context, userID, summaryID int64) error {
	if err := s.summaries.Delete(ctx, userID, summaryID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return apperr.NotFound("summary")
		}
		return err
	}
	return nil
}
