package usecases

import (
	"context"
	"fmt"

	"music_hub/internal/core/domain"
)

func (uc *musicUseCase) Trending(ctx context.Context) Result {
	uc.log.Info("Init trending")

	response, err := uc.service.TrendingMusic(ctx)
	if err != nil {
		outcome, message, errText := uc.classify("trending", err)
		return Result{
			Body: TrendingPayload{
				Items:   trendingItems(domain.DemoTrending()),
				Demo:    true,
				Message: message,
				Error:   errText,
			},
			Outcome: outcome,
		}
	}

	uc.log.Info(fmt.Sprintf("Trending completed: %d items", len(response.Items)))

	return Result{Raw: response.Raw, Live: true, Outcome: OutcomeLive}
}
