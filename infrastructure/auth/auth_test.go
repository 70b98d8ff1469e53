package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"music_hub/infrastructure/logger"
	"music_hub/infrastructure/token_manager"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func writeClientSecret(t *testing.T, tokenURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client_secret.json")
	content := fmt.Sprintf(`{"installed":{"client_id":"id.apps.googleusercontent.com","client_secret":"secret","redirect_uris":["http://localhost"],"auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":%q}}`, tokenURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestTokenSourceRefreshesAndSaves(t *testing.T) {
	var refreshes int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		refreshes++
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"access_token":"ya29.fresh","token_type":"Bearer","expires_in":3600}`)
	}))
	defer ts.Close()

	tokenPath := filepath.Join(t.TempDir(), "token.json")
	tokens := token_manager.NewTokenService(tokenPath)
	require.NoError(t, tokens.SaveToken(&oauth2.Token{
		AccessToken:  "ya29.stale",
		RefreshToken: "1//refresh",
		Expiry:       time.Now().Add(-time.Hour),
	}))

	src, err := NewTokenSource(context.Background(), writeClientSecret(t, ts.URL), tokens, logger.NewConsoleLogger(io.Discard, "error"))
	require.NoError(t, err)

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.fresh", token.AccessToken)
	assert.Equal(t, 1, refreshes)

	saved, err := tokens.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "ya29.fresh", saved.AccessToken)
	assert.Equal(t, "1//refresh", saved.RefreshToken)

	// A valid token is reused without another refresh.
	_, err = src.Token()
	require.NoError(t, err)
	assert.Equal(t, 1, refreshes)
}

func TestTokenSourceValidTokenNotRewritten(t *testing.T) {
	tokenPath := filepath.Join(t.TempDir(), "token.json")
	tokens := token_manager.NewTokenService(tokenPath)
	require.NoError(t, tokens.SaveToken(&oauth2.Token{AccessToken: "ya29.valid", Expiry: time.Now().Add(time.Hour)}))
	before, err := os.Stat(tokenPath)
	require.NoError(t, err)

	src, err := NewTokenSource(context.Background(), writeClientSecret(t, "http://127.0.0.1:1/token"), tokens, logger.NewConsoleLogger(io.Discard, "error"))
	require.NoError(t, err)

	token, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "ya29.valid", token.AccessToken)

	after, err := os.Stat(tokenPath)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}

func TestNewTokenSourceErrors(t *testing.T) {
	tokens := token_manager.NewTokenService(filepath.Join(t.TempDir(), "missing.json"))
	log := logger.NewConsoleLogger(io.Discard, "error")

	_, err := NewTokenSource(context.Background(), filepath.Join(t.TempDir(), "nope.json"), tokens, log)
	assert.ErrorContains(t, err, "failed to read client secret file")

	_, err = NewTokenSource(context.Background(), writeClientSecret(t, "http://127.0.0.1:1/token"), tokens, log)
	assert.ErrorContains(t, err, "failed to load token")
}
