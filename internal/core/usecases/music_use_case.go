package usecases

import (
	"context"
	"encoding/json"

	"music_hub/internal/core/ports"
)

// Outcome labels how a Result was produced.
type Outcome string

const (
	OutcomeLive          Outcome = "live"
	OutcomeNotConfigured Outcome = "not_configured"
	OutcomeUpstreamError Outcome = "upstream_error"
	OutcomeServerError   Outcome = "server_error"
)

const (
	msgNotConfigured   = "YouTube API key not configured. Using demo data."
	msgAPIError        = "Using demo data due to API error."
	msgServerError     = "Using demo data due to server error."
	defaultUpstreamErr = "YouTube API error"
)

// Result is what to send back. A live result carries the upstream body byte for
// byte in Raw. Otherwise Body holds the demo payload.
type Result struct {
	Body    any
	Raw     json.RawMessage
	Live    bool
	Outcome Outcome
}

type musicUseCase struct {
	service ports.YoutubePort
	log     ports.LoggerPort
}

type MusicUseCase interface {
	Search(ctx context.Context, query string) (Result, error)
	Trending(ctx context.Context) Result
}

func NewMusicUseCase(service ports.YoutubePort, logger ports.LoggerPort) MusicUseCase {
	return &musicUseCase{
		service: service,
		log:     logger,
	}
}
