package usecases

import (
	"context"
	"fmt"

	"music_hub/internal/core/domain"
)

// Search returns ErrMissingQuery for an empty query. Any other failure degrades to demo data.
func (uc *musicUseCase) Search(ctx context.Context, query string) (Result, error) {
	if query == "" {
		return Result{}, domain.ErrMissingQuery
	}

	uc.log.Info(fmt.Sprintf("Init search for %q", query))

	response, err := uc.service.SearchMusic(ctx, query)
	if err != nil {
		outcome, message, errText := uc.classify("search", err)
		return Result{
			Body: SearchPayload{
				Items:   searchItems(domain.DemoSearch(query)),
				Demo:    true,
				Query:   query,
				Message: message,
				Error:   errText,
			},
			Outcome: outcome,
		}, nil
	}

	uc.log.Info(fmt.Sprintf("Search completed: %d items", len(response.Items)))

	return Result{Raw: response.Raw, Live: true, Outcome: OutcomeLive}, nil
}
