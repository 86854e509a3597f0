package out

import "context"

// VideoResult is a single video search hit.
type VideoResult struct {
	VideoID     string `json:"video_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ChannelName string `json:"channel_name"`
	Thumbnail   string `json:"thumbnail"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
}

// VideoSearch finds study videos for a topic.
type VideoSearch interface {
	Search(ctx context.Context, query string, maxResults int64) ([]VideoResult, error)
}
