package token_manager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNewTokenServiceWithoutPath(t *testing.T) {
	assert.Nil(t, NewTokenService(""))
}

func TestLoadToken(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"access token", `{"access_token":"ya29.token","token_type":"Bearer"}`, false},
		{"refresh token only", `{"refresh_token":"1//refresh"}`, false},
		{"empty token", `{"token_type":"Bearer"}`, true},
		{"not json", `access_token=abc`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "token.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			token, err := NewTokenService(path).LoadToken()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, token)
		})
	}
}

func TestLoadTokenMissingFile(t *testing.T) {
	_, err := NewTokenService(filepath.Join(t.TempDir(), "missing.json")).LoadToken()
	assert.Error(t, err)
}

func TestSaveTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	svc := NewTokenService(path)
	expiry := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, svc.SaveToken(&oauth2.Token{AccessToken: "ya29.new", RefreshToken: "1//refresh", Expiry: expiry}))

	token, err := svc.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "ya29.new", token.AccessToken)
	assert.Equal(t, "1//refresh", token.RefreshToken)
	assert.True(t, expiry.Equal(token.Expiry))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadTokenRejectsEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"token_type":"Bearer"}`), 0600))

	_, err := NewTokenService(path).LoadToken()
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestSaveTokenReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token.json")
	svc := NewTokenService(path)

	require.NoError(t, svc.SaveToken(&oauth2.Token{AccessToken: "first-token-with-a-long-value"}))
	require.NoError(t, svc.SaveToken(&oauth2.Token{AccessToken: "second"}))

	token, err := svc.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "second", token.AccessToken)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}
