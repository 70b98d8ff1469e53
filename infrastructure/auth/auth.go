package auth

import (
	"context"
	"fmt"
	"os"
	"sync"

	"music_hub/infrastructure/token_manager"
	"music_hub/internal/core/ports"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// Scopes are the read-only scopes live mode needs.
var Scopes = []string{youtube.YoutubeReadonlyScope}

type persistingTokenSource struct {
	base   oauth2.TokenSource
	tokens token_manager.TokenService
	log    ports.LoggerPort

	mu   sync.Mutex
	last *oauth2.Token
}

// NewTokenSource returns a token source that refreshes the stored token with the
// OAuth client in clientSecretFile and writes every refreshed token back through tokens.
func NewTokenSource(ctx context.Context, clientSecretFile string, tokens token_manager.TokenService, logger ports.LoggerPort) (oauth2.TokenSource, error) {
	config, err := loadConfig(Scopes, clientSecretFile)
	if err != nil {
		return nil, err
	}

	token, err := tokens.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	return &persistingTokenSource{
		base:   config.TokenSource(ctx, token),
		tokens: tokens,
		log:    logger,
		last:   token,
	}, nil
}

func loadConfig(scopes []string, clientSecretFile string) (*oauth2.Config, error) {
	b, err := os.ReadFile(clientSecretFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read client secret file (%s): %w", clientSecretFile, err)
	}

	config, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse client secret file: %w", err)
	}

	return config, nil
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.base.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !changed(p.last, token) {
		return token, nil
	}

	if err := p.tokens.SaveToken(token); err != nil {
		p.log.Error("failed to save refreshed token", err)
	} else {
		p.log.Info("Refreshed token saved")
	}
	p.last = token

	return token, nil
}

func changed(old, current *oauth2.Token) bool {
	return current.AccessToken != old.AccessToken ||
		(current.RefreshToken != "" && current.RefreshToken != old.RefreshToken)
}
