package musichub

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"music_hub/internal/core/domain"
	"music_hub/internal/core/ports"

	"github.com/sosodev/duration"
	"google.golang.org/api/youtube/v3"
)

type client struct {
	base       *url.URL
	httpClient *http.Client
	log        ports.LoggerPort
}

type searchResponse struct {
	Items   []*youtube.SearchResult `json:"items"`
	Demo    bool                    `json:"demo"`
	Message string                  `json:"message"`
	Error   string                  `json:"error"`
}

type trendingResponse struct {
	Items   []*youtube.Video `json:"items"`
	Demo    bool             `json:"demo"`
	Message string           `json:"message"`
	Error   string           `json:"error"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// NewClient talks to a Music Hub server at baseURL. A nil transport means http.DefaultTransport;
// the terminal client passes the offline worker so responses survive losing the network.
func NewClient(baseURL string, transport http.RoundTripper, timeout time.Duration, logger ports.LoggerPort) (ports.MusicHubPort, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid music hub url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid music hub url %q: scheme and host are required", baseURL)
	}

	return &client{
		base:       base,
		httpClient: &http.Client{Transport: transport, Timeout: timeout},
		log:        logger,
	}, nil
}

func (c *client) Trending(ctx context.Context) (domain.TrackList, error) {
	var payload trendingResponse
	if err := c.get(ctx, "/api/trending", nil, &payload); err != nil {
		return domain.TrackList{}, err
	}

	list := domain.TrackList{
		Title:   "Trending",
		Demo:    payload.Demo,
		Message: payload.Message,
	}
	for _, item := range payload.Items {
		if item == nil || item.Id == "" {
			continue
		}
		v := domain.Video{ID: item.Id}
		if item.Snippet != nil {
			v.Title = item.Snippet.Title
			v.Artist = item.Snippet.ChannelTitle
			v.PublishedAt = c.parseTime(item.Snippet.PublishedAt)
			v.Medium, v.High = pickThumbnails(item.Snippet.Thumbnails)
		}
		if item.ContentDetails != nil {
			v.Duration = c.parseDuration(item.ContentDetails.Duration)
		}
		list.Videos = append(list.Videos, v)
	}
	return list, nil
}

func (c *client) Search(ctx context.Context, query string) (domain.TrackList, error) {
	var payload searchResponse
	if err := c.get(ctx, "/api/search", url.Values{"q": {query}}, &payload); err != nil {
		return domain.TrackList{}, err
	}

	list := domain.TrackList{
		Title:   fmt.Sprintf("Search: %s", query),
		Demo:    payload.Demo,
		Message: payload.Message,
	}
	for _, item := range payload.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		v := domain.Video{ID: item.Id.VideoId}
		if item.Snippet != nil {
			v.Title = item.Snippet.Title
			v.Artist = item.Snippet.ChannelTitle
			v.PublishedAt = c.parseTime(item.Snippet.PublishedAt)
			v.Medium, v.High = pickThumbnails(item.Snippet.Thumbnails)
		}
		list.Videos = append(list.Videos, v)
	}
	return list, nil
}

func (c *client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.base.JoinPath(path)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if resp.StatusCode == http.StatusBadRequest {
			return fmt.Errorf("%w: %s", domain.ErrMissingQuery, apiErr.Message)
		}
		return fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *client) parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		c.log.Warning(fmt.Sprintf("ignoring invalid publishedAt %q", value))
		return time.Time{}
	}
	return t
}

func (c *client) parseDuration(value string) time.Duration {
	if value == "" {
		return 0
	}
	d, err := duration.Parse(value)
	if err != nil {
		c.log.Warning(fmt.Sprintf("ignoring invalid duration %q", value))
		return 0
	}
	return d.ToTimeDuration()
}

func pickThumbnails(details *youtube.ThumbnailDetails) (medium, high domain.Thumbnail) {
	if details == nil {
		return
	}
	if details.Medium != nil {
		medium = domain.Thumbnail{URL: details.Medium.Url, Width: details.Medium.Width, Height: details.Medium.Height}
	}
	if details.High != nil {
		high = domain.Thumbnail{URL: details.High.Url, Width: details.High.Width, Height: details.High.Height}
	}
	return
}
