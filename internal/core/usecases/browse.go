package usecases

import (
	"context"
	"fmt"

	"music_hub/internal/core/domain"
	"music_hub/internal/core/ports"
)

type browseUseCase struct {
	client ports.MusicHubPort
	log    ports.LoggerPort
}

// BrowseUseCase drives the terminal client.
type BrowseUseCase interface {
	Trending(ctx context.Context) (domain.TrackList, error)
	Search(ctx context.Context, query string) (domain.TrackList, error)
	Reorder(list domain.TrackList, criteria string) domain.TrackList
}

func NewBrowseUseCase(client ports.MusicHubPort, logger ports.LoggerPort) BrowseUseCase {
	return &browseUseCase{
		client: client,
		log:    logger,
	}
}

func (uc *browseUseCase) Trending(ctx context.Context) (domain.TrackList, error) {
	uc.log.Info("Init Get trending")

	list, err := uc.client.Trending(ctx)
	if err != nil {
		uc.log.Error("Failed to get trending", err)
		return domain.TrackList{}, fmt.Errorf("error while getting trending: %w", err)
	}

	uc.log.Info(fmt.Sprintf("Get trending done: %d videos (demo=%t)", len(list.Videos), list.Demo))
	return list, nil
}

func (uc *browseUseCase) Search(ctx context.Context, query string) (domain.TrackList, error) {
	if query == "" {
		return domain.TrackList{}, domain.ErrMissingQuery
	}

	uc.log.Info(fmt.Sprintf("Init Search %q", query))

	list, err := uc.client.Search(ctx, query)
	if err != nil {
		uc.log.Error("Failed to search", err)
		return domain.TrackList{}, fmt.Errorf("error while searching %q: %w", query, err)
	}

	return list, nil
}

// Reorder sorts a copy so the caller's list keeps its original order.
func (uc *browseUseCase) Reorder(list domain.TrackList, criteria string) domain.TrackList {
	sorted := list
	sorted.Videos = append([]domain.Video(nil), list.Videos...)
	sorted.Reorder(criteria)

	uc.log.Info(fmt.Sprintf("Reorder %q by %s", list.Title, criteria))
	return sorted
}
