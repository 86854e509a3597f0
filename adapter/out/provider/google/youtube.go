package google

import (
	"context"
	"fmt"

	"github.com/kisxo/SikshaSathi-Backend/core/port/out"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// youtubeProvider implements out.VideoSearch using the YouTube Data API.
type youtubeProvider struct {
	apiKey   string
	endpoint string
}

// NewYouTubeProvider creates a YouTube search provider.
func NewYouTubeProvider(apiKey string) out.VideoSearch {
	return &youtubeProvider{apiKey: apiKey}
}

// Search runs a snippet search for study videos on the given topic.
func (p *youtubeProvider) Search(ctx context.Context, query string, maxResults int64) ([]out.VideoResult, error) {
	opts := []option.ClientOption{option.WithAPIKey(p.apiKey)}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	resp, err := service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, mapGoogleError(err)
	}

	results := make([]out.VideoResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Snippet == nil {
			continue
		}
		result := out.VideoResult{
			VideoID:     item.Id.VideoId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			ChannelName: item.Snippet.ChannelTitle,
			PublishedAt: item.Snippet.PublishedAt,
			URL:         "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			result.Thumbnail = item.Snippet.Thumbnails.High.Url
		}
		results = append(results, result)
	}
	return results, nil
}

// Ensure youtubeProvider implements out.VideoSearch
var _ out.VideoSearch = (*youtubeProvider)(nil)
