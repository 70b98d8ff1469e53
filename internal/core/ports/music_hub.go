package ports

import (
	"context"

	"music_hub/internal/core/domain"
)

// MusicHubPort is the client side of the /api endpoints.
type MusicHubPort interface {
	Trending(ctx context.Context) (domain.TrackList, error)
	Search(ctx context.Context, query string) (domain.TrackList, error)
}
