package study

import (
	"context"

	"github.com/kisxo/SikshaSathi-Backend/core/agent/llm"
	"github.com/kisxo/SikshaSathi-Backend/core/domain"
	"github.com/kisxo/SikshaSathi-Backend/core/port/out"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/logger"

	json "github.com/goccy/go-json"
)

// maxVideoResults matches the YouTube search page size.
const maxVideoResults = 5

// ResourceService generates book lists and video suggestions.
type ResourceService struct {
	fast      out.LLM
	videos    out.VideoSearch
	resources out.ResourceRepository
}

// NewResourceService creates a ResourceService. The fast model handles
// book recommendations.
func NewResourceService(fast out.LLM, videos out.VideoSearch, resources out.ResourceRepository) *ResourceService {
	return &ResourceService{fast: fast, videos: videos, resources: resources}
}

// GenerateBooks asks the model for verifiable study books on the topic
// and persists the validated result.
func (s *ResourceService) GenerateBooks(ctx context.Context, userID int64, topic string) (*domain.Resource, error) {
	if topic == "" {
		return nil, apperr.MissingField("topic")
	}

	raw, err := s.fast.CompleteJSON(ctx, llm.BookSystemPrompt(), llm.BookUserPrompt(topic))
	if err != nil {
		return nil, apperr.LLMError(err)
	}

	payload, err := llm.ValidateBookPayload(raw)
	if err != nil {
		logger.Warn("Rejected book payload for user %d: %v", userID, err)
		return nil, apperr.BadRequest("Resource Data is not valid JSON")
	}

	if msg, ok := payload["error"].(string); ok {
		return nil, apperr.NotFound(msg)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resource := &domain.Resource{
		UserID:       userID,
		Data:         data,
		ResourceType: domain.ResourceTypeBook,
	}
	if err := s.resources.Create(ctx, resource); err != nil {
		return nil, err
	}
	return resource, nil
}

// ListResources returns the user's saved resources.
func (s *ResourceService) ListResources(ctx context.Context, userID int64, resourceType string, limit, offset int) ([]*domain.Resource, error) {
	resources, err := s.resources.ListByUserID(ctx, userID, resourceType, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(resources) == 0 {
		return nil, apperr.NotFound("resources")
	}
	return resources, nil
}

// SearchVideos finds study videos for a topic.
func (s *ResourceService) SearchVideos(ctx context.Context, topic string) ([]out.VideoResult, error) {
	if topic == "" {
		return nil, apperr.MissingField("topic")
	}

	results, err := s.videos.Search(ctx, topic, maxVideoResults)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apperr.NotFound("videos")
	}
	return results, nil
}
