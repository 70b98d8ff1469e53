package token_manager

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// ErrEmptyToken is returned for a token file with neither an access nor a refresh token.
var ErrEmptyToken = errors.New("token has no access or refresh token")

// TokenService reads and writes the OAuth2 token used for live mode when no API key is set.
type TokenService interface {
	LoadToken() (*oauth2.Token, error)
	SaveToken(token *oauth2.Token) error
}

type fileTokenStore struct {
	path string
}

// NewTokenService returns nil when no token file is configured.
func NewTokenService(path string) TokenService {
	if path == "" {
		return nil
	}
	return &fileTokenStore{path: path}
}

func (s *fileTokenStore) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read token %s: %w", s.path, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("decode token %s: %w", s.path, err)
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("%s: %w", s.path, ErrEmptyToken)
	}

	return &token, nil
}

// SaveToken replaces the token file through a rename so readers never see a partial write.
func (s *fileTokenStore) SaveToken(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".token-*")
	if err != nil {
		return fmt.Errorf("save token %s: %w", s.path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save token %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save token %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save token %s: %w", s.path, err)
	}

	return nil
}
