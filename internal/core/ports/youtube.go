package ports

import (
	"context"
	"encoding/json"

	"google.golang.org/api/youtube/v3"
)

// SearchListing is a search.list response, decoded and as the API sent it.
type SearchListing struct {
	*youtube.SearchListResponse
	Raw json.RawMessage
}

// VideoListing is a videos.list response, decoded and as the API sent it.
type VideoListing struct {
	*youtube.VideoListResponse
	Raw json.RawMessage
}

type YoutubePort interface {
	SearchMusic(ctx context.Context, query string) (*SearchListing, error)
	TrendingMusic(ctx context.Context) (*VideoListing, error)
}
