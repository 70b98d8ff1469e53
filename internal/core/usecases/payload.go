package usecases

import (
	"time"

	"music_hub/internal/core/domain"

	"google.golang.org/api/youtube/v3"
)

// SearchPayload mirrors a search.list response closely enough for clients that
// only read items, plus the demo markers.
type SearchPayload struct {
	Items   []*youtube.SearchResult `json:"items"`
	Demo    bool                    `json:"demo"`
	Query   string                  `json:"query"`
	Message string                  `json:"message,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

type TrendingPayload struct {
	Items   []*youtube.Video `json:"items"`
	Demo    bool             `json:"demo"`
	Message string           `json:"message,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func searchItems(videos []domain.Video) []*youtube.SearchResult {
	items := make([]*youtube.SearchResult, 0, len(videos))
	for _, v := range videos {
		items = append(items, &youtube.SearchResult{
			Id: &youtube.ResourceId{VideoId: v.ID},
			Snippet: &youtube.SearchResultSnippet{
				Title:        v.Title,
				ChannelTitle: v.Artist,
				Thumbnails:   thumbnails(v),
				PublishedAt:  v.PublishedAt.UTC().Format(time.RFC3339),
			},
		})
	}
	return items
}

func trendingItems(videos []domain.Video) []*youtube.Video {
	items := make([]*youtube.Video, 0, len(videos))
	for _, v := range videos {
		items = append(items, &youtube.Video{
			Id: v.ID,
			Snippet: &youtube.VideoSnippet{
				Title:        v.Title,
				ChannelTitle: v.Artist,
				Thumbnails:   thumbnails(v),
				PublishedAt:  v.PublishedAt.UTC().Format(time.RFC3339),
			},
		})
	}
	return items
}

func thumbnails(v domain.Video) *youtube.ThumbnailDetails {
	details := &youtube.ThumbnailDetails{}
	if v.Medium.URL != "" {
		details.Medium = &youtube.Thumbnail{Url: v.Medium.URL, Width: v.Medium.Width, Height: v.Medium.Height}
	}
	if v.High.URL != "" {
		details.High = &youtube.Thumbnail{Url: v.High.URL, Width: v.High.Width, Height: v.High.Height}
	}
	return details
}
