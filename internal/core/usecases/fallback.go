package usecases

import (
	"errors"

	"music_hub/internal/core/domain"
)

// classify maps a provider error onto the demo payload's message and error fields.
func (uc *musicUseCase) classify(operation string, err error) (Outcome, string, string) {
	if errors.Is(err, domain.ErrAPIKeyNotConfigured) {
		uc.log.Warning(operation + ": YouTube API key not configured, serving demo data")
		return OutcomeNotConfigured, msgNotConfigured, ""
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		uc.log.Error(operation+": YouTube API error, serving demo data", err)
		if upstream.Message == "" {
			return OutcomeUpstreamError, msgAPIError, defaultUpstreamErr
		}
		return OutcomeUpstreamError, msgAPIError, upstream.Message
	}

	uc.log.Error(operation+": server error, serving demo data", err)
	return OutcomeServerError, msgServerError, err.Error()
}
