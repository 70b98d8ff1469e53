package musichub

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"music_hub/infrastructure/logger"
	"music_hub/internal/core/domain"
	"music_hub/internal/offline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trendingBody = `{
  "items": [
    {
      "id": "tFEW5e1uT3Y",
      "snippet": {
        "title": "Flowers",
        "channelTitle": "Miley Cyrus",
        "publishedAt": "2023-01-12T00:00:00Z",
        "thumbnails": {"high": {"url": "https://i.ytimg.com/vi/tFEW5e1uT3Y/hqdefault.jpg", "width": 480, "height": 360}}
      },
      "contentDetails": {"duration": "PT3M21S"}
    },
    {"id": ""}
  ],
  "demo": true,
  "message": "YouTube API key not configured. Using demo data."
}`

const searchBody = `{
  "items": [
    {"id": {"kind": "youtube#channel", "channelId": "UC1"}},
    {
      "id": {"kind": "youtube#video", "videoId": "JGwWNGJdvx8"},
      "snippet": {"title": "Shape of You", "channelTitle": "Ed Sheeran", "publishedAt": "not-a-date"}
    }
  ],
  "demo": false
}`

func newTestClient(t *testing.T, baseURL string, transport http.RoundTripper) *client {
	t.Helper()
	c, err := NewClient(baseURL, transport, 2*time.Second, logger.NewConsoleLogger(io.Discard, "error"))
	require.NoError(t, err)
	return c.(*client)
}

func TestNewClientRejectsInvalidURL(t *testing.T) {
	_, err := NewClient("localhost", nil, time.Second, logger.NewConsoleLogger(io.Discard, "error"))
	assert.Error(t, err)
}

func TestTrending(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/trending", r.URL.Path)
		io.WriteString(w, trendingBody)
	}))
	defer ts.Close()

	list, err := newTestClient(t, ts.URL, nil).Trending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Trending", list.Title)
	assert.True(t, list.Demo)
	assert.Equal(t, "YouTube API key not configured. Using demo data.", list.Message)
	require.Len(t, list.Videos, 1)

	v := list.Videos[0]
	assert.Equal(t, "tFEW5e1uT3Y", v.ID)
	assert.Equal(t, "Miley Cyrus", v.Artist)
	assert.Equal(t, 3*time.Minute+21*time.Second, v.Duration)
	assert.Equal(t, time.Date(2023, 1, 12, 0, 0, 0, 0, time.UTC), v.PublishedAt)
	assert.Equal(t, int64(480), v.High.Width)
	assert.Empty(t, v.Medium.URL)
}

func TestSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "ed sheeran", r.URL.Query().Get("q"))
		io.WriteString(w, searchBody)
	}))
	defer ts.Close()

	list, err := newTestClient(t, ts.URL+"/", nil).Search(context.Background(), "ed sheeran")
	require.NoError(t, err)

	assert.Equal(t, "Search: ed sheeran", list.Title)
	assert.False(t, list.Demo)
	require.Len(t, list.Videos, 1, "channel results are skipped")
	assert.Equal(t, "JGwWNGJdvx8", list.Videos[0].ID)
	assert.True(t, list.Videos[0].PublishedAt.IsZero())
}

func TestSearchMissingQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"Missing search query parameter","message":"Please provide a search query using the 'q' parameter."}`)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts.URL, nil).Search(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMissingQuery)
}

func TestUnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts.URL, nil).Trending(context.Background())
	assert.ErrorContains(t, err, "unexpected status 502")
}

func TestTrendingSurvivesOutageThroughOfflineWorker(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, trendingBody)
	}))

	log := logger.NewConsoleLogger(io.Discard, "error")
	worker, err := offline.New(ts.URL, offline.NewMemoryStore(), log, offline.WithAssets(nil))
	require.NoError(t, err)
	require.NoError(t, worker.Register(context.Background()))

	c := newTestClient(t, ts.URL, worker)

	online, err := c.Trending(context.Background())
	require.NoError(t, err)

	ts.Close()

	offlineList, err := c.Trending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, online, offlineList)
}
